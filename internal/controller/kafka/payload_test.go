package kafka

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

func TestDecodeJobPayload(t *testing.T) {
	validate := validator.New()

	productID := uuid.New()
	requestID := uuid.New()

	valid, _ := json.Marshal(map[string]interface{}{
		"product_id":       productID,
		"input_image_urls": []string{"https://img.test/1.jpg"},
		"request_id":       requestID,
	})

	tests := []struct {
		name    string
		value   []byte
		wantErr bool
	}{
		{
			name:  "valid payload",
			value: valid,
		},
		{
			name:    "not json",
			value:   []byte("not json at all"),
			wantErr: true,
		},
		{
			name:    "missing product id",
			value:   []byte(`{"input_image_urls":["https://img.test/1.jpg"],"request_id":"` + requestID.String() + `"}`),
			wantErr: true,
		},
		{
			name:    "missing request id",
			value:   []byte(`{"product_id":"` + productID.String() + `","input_image_urls":["https://img.test/1.jpg"]}`),
			wantErr: true,
		},
		{
			name:    "url entry is not a url",
			value:   []byte(`{"product_id":"` + productID.String() + `","input_image_urls":["not a url"],"request_id":"` + requestID.String() + `"}`),
			wantErr: true,
		},
		{
			name:    "empty url entry",
			value:   []byte(`{"product_id":"` + productID.String() + `","input_image_urls":[""],"request_id":"` + requestID.String() + `"}`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := decodeJobPayload(tt.value, validate)
			if tt.wantErr {
				if !errors.Is(err, errs.ErrMalformedJob) {
					t.Fatalf("expected malformed job error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			job := payload.toJob()
			if job.ProductID != productID {
				t.Error("product id mismatch")
			}
			if job.RequestID != requestID {
				t.Error("request id mismatch")
			}
			if len(job.InputImageURLs) != 1 {
				t.Fatalf("expected 1 url, got %d", len(job.InputImageURLs))
			}
		})
	}
}
