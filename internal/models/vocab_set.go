package models

import "time"

// VocabSet rows are created by the content pipeline; this service only flips
// is_active.
type VocabSet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ToggleActiveRequest struct {
	SetID string `json:"setId"`
}

// SetEvent is the payload published on the vocab_updates channel whenever a
// set's active flag changes.
type SetEvent struct {
	Type     string `json:"type"`
	SetID    string `json:"setId"`
	IsActive bool   `json:"isActive"`
}
