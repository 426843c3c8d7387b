package entity

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is a queued job persisted in the same transaction as the
// product it belongs to. AggregateID is the product id; Payload is the
// job message published to the queue by the relay.
type OutboxEvent struct {
	ID          uuid.UUID  `json:"id"`
	AggregateID uuid.UUID  `json:"aggregate_id"`
	Payload     []byte     `json:"payload"`
	Status      Status     `json:"status"` // pending, processing, processed, failed
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	RetryCount  int        `json:"retry_count"`
}
