package dto

import (
	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/entity"
)

// Job is one unit of queued work, one per product.
type Job struct {
	ProductID      uuid.UUID `json:"product_id"`
	InputImageURLs []string  `json:"input_image_urls"`
	RequestID      uuid.UUID `json:"request_id"`
}

// ProductRecord is one parsed CSV row.
type ProductRecord struct {
	Name           string
	InputImageURLs []string
}

// RequestStatus is the read-only projection served by the status endpoint.
type RequestStatus struct {
	RequestID uuid.UUID       `json:"request_id"`
	Status    entity.Status   `json:"status"`
	Products  []ProductStatus `json:"products"`
}

type ProductStatus struct {
	ID              uuid.UUID     `json:"id"`
	ProductName     string        `json:"product_name"`
	InputImageURLs  []string      `json:"input_image_urls"`
	OutputImageURLs []string      `json:"output_image_urls"`
	Status          entity.Status `json:"status"`
}
