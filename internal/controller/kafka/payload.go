package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/dto"
	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

// JobPayload is the wire schema of one queued job. It is validated on
// dequeue; anything that fails decoding or validation goes to the
// dead-letter topic instead of crashing the consumer loop.
type JobPayload struct {
	ProductID      uuid.UUID `json:"product_id" validate:"required"`
	InputImageURLs []string  `json:"input_image_urls" validate:"dive,required,url"`
	RequestID      uuid.UUID `json:"request_id" validate:"required"`
}

func decodeJobPayload(value []byte, validate *validator.Validate) (JobPayload, error) {
	var payload JobPayload

	err := json.Unmarshal(value, &payload)
	if err != nil {
		return JobPayload{}, fmt.Errorf("decodeJobPayload - json.Unmarshal: %v: %w", err, errs.ErrMalformedJob)
	}

	err = validate.Struct(payload)
	if err != nil {
		return JobPayload{}, fmt.Errorf("decodeJobPayload - validate.Struct: %v: %w", err, errs.ErrMalformedJob)
	}

	return payload, nil
}

func (p JobPayload) toJob() dto.Job {
	return dto.Job{
		ProductID:      p.ProductID,
		InputImageURLs: p.InputImageURLs,
		RequestID:      p.RequestID,
	}
}
