package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mikra-backend/internal/middleware"
	"mikra-backend/internal/models"
)

const defaultStudyMode = "study"

type StudySessionHandler struct {
	repo   studySessionRepository
	logger *zap.Logger
}

type studySessionRepository interface {
	Start(ctx context.Context, s *models.StudySession) error
	Heartbeat(ctx context.Context, sessionID uuid.UUID, userID string) error
}

func NewStudySessionHandler(repo studySessionRepository, logger *zap.Logger) *StudySessionHandler {
	return &StudySessionHandler{repo: repo, logger: logger}
}

// Start creates a session for the authenticated caller. The body is optional;
// setId is stored as given without checking that the set exists, and mode
// falls back to "study".
func (h *StudySessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	// Body is optional; an absent or unreadable body means defaults.
	var req models.StartSessionRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	if req.Mode == "" {
		req.Mode = defaultStudyMode
	}

	session := &models.StudySession{
		UserID: user.ID,
		SetID:  req.SetID,
		Mode:   req.Mode,
	}

	if err := h.repo.Start(r.Context(), session); err != nil {
		h.logger.Error("failed to start study session", zap.String("user_id", user.ID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to start session"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"sessionId": session.ID,
		"startTime": session.StartedAt,
	})
}

// Heartbeat bumps the session's last-activity timestamp. The update is scoped
// to the caller's own rows; a session owned by someone else matches nothing
// and the call still reports success.
func (h *StudySessionHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req models.HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("sessionId is required"))
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid sessionId"))
		return
	}

	if err := h.repo.Heartbeat(r.Context(), sessionID, user.ID); err != nil {
		h.logger.Error("failed to record heartbeat", zap.String("session_id", req.SessionID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to update session"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
