package ingestion

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/dto"
	"github.com/itshivams/image-processing-system/internal/entity"
)

func newJobEvent(product *entity.Product) (*entity.OutboxEvent, error) {
	payload, err := json.Marshal(dto.Job{
		ProductID:      product.ID,
		InputImageURLs: product.InputImageURLs,
		RequestID:      product.RequestID,
	})
	if err != nil {
		return nil, fmt.Errorf("newJobEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: product.ID,
		Payload:     payload,
		Status:      entity.Pending,
		CreatedAt:   time.Now(),
		RetryCount:  0,
	}, nil
}
