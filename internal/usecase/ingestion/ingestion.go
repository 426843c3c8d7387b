package ingestion

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/entity"
	"github.com/itshivams/image-processing-system/internal/repo"
	"github.com/itshivams/image-processing-system/pkg/logger"
)

type IngestionUseCase struct {
	requestRepo repo.RequestRepo
	productRepo repo.ProductRepo
	outboxRepo  repo.JobOutboxRepo
	transactor  repo.Transactor

	logger logger.Interface
}

func New(
	requestRepo repo.RequestRepo,
	productRepo repo.ProductRepo,
	outboxRepo repo.JobOutboxRepo,
	transactor repo.Transactor,
	l logger.Interface,
) *IngestionUseCase {
	return &IngestionUseCase{
		requestRepo: requestRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		transactor:  transactor,
		logger:      l,
	}
}

// Ingest parses the CSV and persists the request, all products and one
// outbox job event per product in a single transaction. The relay only
// sees job events after commit, so a job can never reference a product
// that is not durably created, and a mid-CSV failure leaves nothing behind.
func (uc *IngestionUseCase) Ingest(ctx context.Context, csv io.Reader) (uuid.UUID, int, error) {
	records, err := parseProductCSV(csv)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("IngestionUseCase - Ingest - parseProductCSV: %w", err)
	}

	request := &entity.Request{
		ID:        uuid.New(),
		Status:    entity.Pending,
		CreatedAt: time.Now(),
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.requestRepo.Create(ctx, request); err != nil {
			return fmt.Errorf("IngestionUseCase - Ingest - uc.requestRepo.Create: %w", err)
		}

		for _, record := range records {
			product := &entity.Product{
				ID:              uuid.New(),
				RequestID:       request.ID,
				ProductName:     record.Name,
				InputImageURLs:  record.InputImageURLs,
				OutputImageURLs: []string{},
				Status:          entity.Pending,
				CreatedAt:       time.Now(),
			}

			if err := uc.productRepo.Create(ctx, product); err != nil {
				return fmt.Errorf("IngestionUseCase - Ingest - uc.productRepo.Create: %w", err)
			}

			event, err := newJobEvent(product)
			if err != nil {
				return fmt.Errorf("IngestionUseCase - Ingest - newJobEvent: %w", err)
			}
			if err := uc.outboxRepo.Create(ctx, event); err != nil {
				return fmt.Errorf("IngestionUseCase - Ingest - uc.outboxRepo.Create: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("IngestionUseCase - Ingest - uc.transactor.WithinTransaction: %w", err)
	}

	uc.logger.Info("ingested request %s with %d products", request.ID, len(records))

	return request.ID, len(records), nil
}
