package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is one CSV row. OutputImageURLs is index-aligned with
// InputImageURLs and stays empty until the whole product succeeds.
type Product struct {
	ID        uuid.UUID `json:"id"`
	RequestID uuid.UUID `json:"request_id"`

	ProductName     string   `json:"product_name"`
	InputImageURLs  []string `json:"input_image_urls"`
	OutputImageURLs []string `json:"output_image_urls"`
	Status          Status   `json:"status"` // pending, completed, failed

	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}
