package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mikra-backend/internal/handlers"
	"mikra-backend/internal/middleware"
	"mikra-backend/internal/websocket"
)

func New(
	auth *middleware.TokenAuth,
	bibleHandler *handlers.BibleHandler,
	studySessionHandler *handlers.StudySessionHandler,
	vocabSetHandler *handlers.VocabSetHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// The activation endpoints perform no auth check (observed surface);
	// limit them per IP instead.
	setLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Bible Reference Routes ────
	r.Route("/bible", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Get("/books", bibleHandler.ListBooks)
	})

	// ──── Vocab Routes ────
	r.Route("/vocab", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Use(auth.Middleware)
			r.Post("/start", studySessionHandler.Start)
			r.Post("/heartbeat", studySessionHandler.Heartbeat)
		})

		r.Route("/sets", func(r chi.Router) {
			r.Use(setLimiter.Middleware)
			r.Post("/{setId}/activate", vocabSetHandler.Activate)
			r.Post("/toggle-active", vocabSetHandler.ToggleActive)
		})
	})

	// ──── WebSocket ────
	r.Get("/ws", wsHub.HandleWebSocket)

	return r
}
