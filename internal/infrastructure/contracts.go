package infrastructure

import (
	"context"

	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/entity"
)

type (
	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}

	// DeadLetterSender routes undecodable or invalid job messages away from
	// the consumer loop.
	DeadLetterSender interface {
		SendDeadLetter(ctx context.Context, key, value []byte) error
	}

	ImageFetcher interface {
		Fetch(ctx context.Context, url string) ([]byte, error)
	}

	// ImageCompressor re-encodes raw image bytes as JPEG at a fixed quality.
	ImageCompressor interface {
		Compress(data []byte) ([]byte, error)
	}

	WebhookNotifier interface {
		NotifyCompleted(ctx context.Context, requestID uuid.UUID) error
	}
)
