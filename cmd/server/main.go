package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mikra-backend/internal/config"
	"mikra-backend/internal/database"
	"mikra-backend/internal/handlers"
	"mikra-backend/internal/logger"
	"mikra-backend/internal/middleware"
	"mikra-backend/internal/repository"
	"mikra-backend/internal/router"
	"mikra-backend/internal/services"
	"mikra-backend/internal/websocket"
)

const setEventsChannel = "vocab_updates"

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()
	log.Info("starting mikra backend", zap.String("env", cfg.Env))

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()
	log.Info("postgres connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClients.Close()
	log.Info("redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}
	log.Info("database migrations applied")

	// ──── Initialize Repositories ────
	bibleRepo := repository.NewBibleRepo(pool)
	studySessionRepo := repository.NewStudySessionRepo(pool)
	vocabSetRepo := repository.NewVocabSetRepo(pool)

	// ──── Initialize Auth & Handlers ────
	auth := middleware.NewTokenAuth(cfg.JWTSecret, cfg.CookieName)
	bibleHandler := handlers.NewBibleHandler(bibleRepo, redisClients.Cache, cfg.BookCacheTTL, log)
	studySessionHandler := handlers.NewStudySessionHandler(studySessionRepo, log)
	vocabSetHandler := handlers.NewVocabSetHandler(vocabSetRepo, redisClients.PubSub, log)

	// ──── Step 5: Start Session Reaper ────
	reaper := services.NewSessionReaper(studySessionRepo, cfg.SessionIdleTimeout, cfg.ReaperInterval, log)
	reaper.Start()

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, auth, setEventsChannel, log)

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		auth,
		bibleHandler,
		studySessionHandler,
		vocabSetHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")
		reaper.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Info("mikra backend ready", zap.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}
