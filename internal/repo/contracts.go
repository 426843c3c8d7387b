package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/entity"
)

type (
	RequestRepo interface {
		Create(ctx context.Context, request *entity.Request) error
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Request, error)
		// CompleteIfAllProductsDone transitions the request to completed iff it
		// is still pending and no product of it has status other than
		// completed. Reports whether this call won the transition.
		CompleteIfAllProductsDone(ctx context.Context, id uuid.UUID, completedAt time.Time) (bool, error)
	}

	ProductRepo interface {
		Create(ctx context.Context, product *entity.Product) error
		GetByRequestID(ctx context.Context, requestID uuid.UUID) ([]*entity.Product, error)
		SetCompleted(ctx context.Context, id uuid.UUID, outputImageURLs []string, processedAt time.Time) error
		SetFailed(ctx context.Context, id uuid.UUID) error
	}

	JobOutboxRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, ids uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, ids uuid.UUIDs) error
		IncrementRetryCountBatch(ctx context.Context, ids uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		DeleteOldProcessedAndFailed(ctx context.Context) (int64, error)
	}

	// ArtifactRepo is durable object storage for compressed images.
	// UploadBytes returns the public URL of the stored object.
	ArtifactRepo interface {
		UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
