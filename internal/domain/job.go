package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RenderJob is one queued render of a CV document submitted over the HTTP
// surface. Document holds the raw parsed payload; artifact paths land in
// Metadata once the job completes.
type RenderJob struct {
	ID        uuid.UUID      `json:"id"`
	Theme     string         `json:"theme,omitempty"`
	Status    string         `json:"status"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Document  map[string]any `json:"document,omitempty"`
}
