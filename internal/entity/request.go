package entity

import (
	"time"

	"github.com/google/uuid"
)

// Request is one CSV submission. It completes when every product that
// belongs to it is completed.
type Request struct {
	ID uuid.UUID `json:"id"`

	Status Status `json:"status"` // pending, completed

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
