package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/dto"
	"github.com/itshivams/image-processing-system/internal/entity"
)

type (
	// IngestionUseCase turns a CSV payload into one request, its products and
	// their queued jobs. Returns the request id and the number of products.
	IngestionUseCase interface {
		Ingest(ctx context.Context, csv io.Reader) (uuid.UUID, int, error)
	}

	// StatusUseCase is the read-only projection of a request and its products.
	StatusUseCase interface {
		RequestStatus(ctx context.Context, requestID uuid.UUID) (*dto.RequestStatus, error)
	}

	// JobProcessorUseCase handles one dequeued job: fetches and compresses
	// every input image, persists the terminal product status and, when the
	// product was the last one outstanding, completes the request and fires
	// the webhook.
	JobProcessorUseCase interface {
		ProcessJob(ctx context.Context, job dto.Job) error
	}

	// JobRelayUseCase backs the outbox relay worker.
	JobRelayUseCase interface {
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}
)
