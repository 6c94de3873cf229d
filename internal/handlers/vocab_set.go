package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mikra-backend/internal/models"
	"mikra-backend/internal/repository"
)

// setEventsChannel carries activation events to the websocket hub.
const setEventsChannel = "vocab_updates"

type VocabSetHandler struct {
	repo   vocabSetRepository
	events *redis.Client
	logger *zap.Logger
}

type vocabSetRepository interface {
	Activate(ctx context.Context, setID string) error
	Toggle(ctx context.Context, setID string) (bool, error)
}

func NewVocabSetHandler(repo vocabSetRepository, events *redis.Client, logger *zap.Logger) *VocabSetHandler {
	return &VocabSetHandler{repo: repo, events: events, logger: logger}
}

// Activate makes the addressed set the single active one. Deliberately
// unauthenticated, matching the observed surface; the route sits behind the
// per-IP rate limiter instead.
func (h *VocabSetHandler) Activate(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "setId")

	if err := h.repo.Activate(r.Context(), setID); err != nil {
		if errors.Is(err, repository.ErrSetNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("Vocab set not found"))
			return
		}
		h.logger.Error("failed to activate vocab set", zap.String("set_id", setID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to activate set"))
		return
	}

	h.publish(r.Context(), models.SetEvent{Type: "set_activated", SetID: setID, IsActive: true})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"activeSetId": setID,
	})
}

// ToggleActive flips the addressed set's flag independently of every other
// set.
func (h *VocabSetHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if req.SetID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("setId is required"))
		return
	}

	isActive, err := h.repo.Toggle(r.Context(), req.SetID)
	if err != nil {
		if errors.Is(err, repository.ErrSetNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("Vocab set not found"))
			return
		}
		h.logger.Error("failed to toggle vocab set", zap.String("set_id", req.SetID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to toggle set"))
		return
	}

	h.publish(r.Context(), models.SetEvent{Type: "set_toggled", SetID: req.SetID, IsActive: isActive})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"setId":    req.SetID,
		"isActive": isActive,
	})
}

// publish is best effort; a down pub/sub channel never fails the request.
func (h *VocabSetHandler) publish(ctx context.Context, event models.SetEvent) {
	if h.events == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := h.events.Publish(ctx, setEventsChannel, payload).Err(); err != nil {
		h.logger.Warn("failed to publish set event", zap.String("set_id", event.SetID), zap.Error(err))
	}
}
