package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mikra-backend/internal/models"
)

const bookCacheKey = "cache:bible_books"

type BibleHandler struct {
	repo     bibleRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

type bibleRepository interface {
	ListBooks(ctx context.Context) ([]*models.BibleBook, error)
}

func NewBibleHandler(repo bibleRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *BibleHandler {
	return &BibleHandler{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ListBooks serves the canonical book table, ordered by order_index. The
// table never changes at runtime, so the marshaled rows are cached in Redis;
// cache failures fall through to the database.
func (h *BibleHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	if books, ok := h.fromCache(r.Context()); ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"books":   books,
		})
		return
	}

	books, err := h.repo.ListBooks(r.Context())
	if err != nil {
		h.logger.Error("failed to list bible books", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to fetch books"))
		return
	}
	if books == nil {
		books = []*models.BibleBook{}
	}

	h.toCache(r.Context(), books)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"books":   books,
	})
}

func (h *BibleHandler) fromCache(ctx context.Context) ([]*models.BibleBook, bool) {
	if h.cache == nil {
		return nil, false
	}

	raw, err := h.cache.Get(ctx, bookCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var books []*models.BibleBook
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, false
	}
	return books, true
}

func (h *BibleHandler) toCache(ctx context.Context, books []*models.BibleBook) {
	if h.cache == nil {
		return
	}

	raw, err := json.Marshal(books)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, bookCacheKey, raw, h.cacheTTL).Err(); err != nil {
		h.logger.Warn("failed to cache bible books", zap.Error(err))
	}
}
