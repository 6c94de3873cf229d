package models

import (
	"time"

	"github.com/google/uuid"
)

// StudySession tracks a single study run for one user. set_id is stored as
// given by the client and may reference a set that no longer exists.
type StudySession struct {
	ID             uuid.UUID  `json:"id"`
	UserID         string     `json:"userId"`
	SetID          *string    `json:"setId,omitempty"`
	Mode           string     `json:"mode"`
	StartedAt      time.Time  `json:"startTime"`
	LastActivityAt time.Time  `json:"lastActivity"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
}

type StartSessionRequest struct {
	SetID *string `json:"setId"`
	Mode  string  `json:"mode"`
}

type HeartbeatRequest struct {
	SessionID string `json:"sessionId"`
}
