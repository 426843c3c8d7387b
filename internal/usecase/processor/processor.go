package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/dto"
	"github.com/itshivams/image-processing-system/internal/infrastructure"
	"github.com/itshivams/image-processing-system/internal/repo"
	"github.com/itshivams/image-processing-system/pkg/logger"
)

const artifactContentType = "image/jpeg"

type JobProcessorUseCase struct {
	productRepo  repo.ProductRepo
	requestRepo  repo.RequestRepo
	artifactRepo repo.ArtifactRepo

	fetcher    infrastructure.ImageFetcher
	compressor infrastructure.ImageCompressor
	webhook    infrastructure.WebhookNotifier

	logger logger.Interface
}

func New(
	productRepo repo.ProductRepo,
	requestRepo repo.RequestRepo,
	artifactRepo repo.ArtifactRepo,
	fetcher infrastructure.ImageFetcher,
	compressor infrastructure.ImageCompressor,
	webhook infrastructure.WebhookNotifier,
	l logger.Interface,
) *JobProcessorUseCase {
	return &JobProcessorUseCase{
		productRepo:  productRepo,
		requestRepo:  requestRepo,
		artifactRepo: artifactRepo,
		fetcher:      fetcher,
		compressor:   compressor,
		webhook:      webhook,
		logger:       l,
	}
}

// ProcessJob processes one product's images strictly in input order, so the
// persisted output URLs stay index-aligned with the inputs. The first
// failure aborts the rest of the product: the product is marked failed with
// no outputs and the error is returned so the queue can apply its retry
// policy (a retry redoes every image).
func (uc *JobProcessorUseCase) ProcessJob(ctx context.Context, job dto.Job) error {
	outputImageURLs := make([]string, 0, len(job.InputImageURLs))

	for i, url := range job.InputImageURLs {
		publicURL, err := uc.processImage(ctx, job.ProductID, i, url)
		if err != nil {
			uc.markFailed(ctx, job.ProductID)

			return fmt.Errorf("JobProcessorUseCase - ProcessJob - image %d: %w", i, err)
		}

		outputImageURLs = append(outputImageURLs, publicURL)
	}

	err := uc.productRepo.SetCompleted(ctx, job.ProductID, outputImageURLs, time.Now())
	if err != nil {
		return fmt.Errorf("JobProcessorUseCase - ProcessJob - uc.productRepo.SetCompleted: %w", err)
	}

	err = uc.finalizeRequest(ctx, job.RequestID)
	if err != nil {
		return fmt.Errorf("JobProcessorUseCase - ProcessJob - uc.finalizeRequest: %w", err)
	}

	return nil
}

func (uc *JobProcessorUseCase) processImage(ctx context.Context, productID uuid.UUID, index int, url string) (string, error) {
	data, err := uc.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("uc.fetcher.Fetch: %w", err)
	}

	compressed, err := uc.compressor.Compress(data)
	if err != nil {
		return "", fmt.Errorf("uc.compressor.Compress: %w", err)
	}

	key := fmt.Sprintf("compressed/%s_%d.jpg", productID, index)

	publicURL, err := uc.artifactRepo.UploadBytes(ctx, key, compressed, artifactContentType)
	if err != nil {
		return "", fmt.Errorf("uc.artifactRepo.UploadBytes: %w", err)
	}

	return publicURL, nil
}

// finalizeRequest completes the request iff this product was the last one
// still not completed. The conditional update in the repo guarantees at most
// one caller wins, so the webhook fires exactly once per request. Webhook
// delivery failure is logged and swallowed: it never fails the job.
func (uc *JobProcessorUseCase) finalizeRequest(ctx context.Context, requestID uuid.UUID) error {
	completed, err := uc.requestRepo.CompleteIfAllProductsDone(ctx, requestID, time.Now())
	if err != nil {
		return fmt.Errorf("uc.requestRepo.CompleteIfAllProductsDone: %w", err)
	}

	if !completed {
		return nil
	}

	uc.logger.Info("request %s completed", requestID)

	err = uc.webhook.NotifyCompleted(ctx, requestID)
	if err != nil {
		uc.logger.Error(err, "JobProcessorUseCase - finalizeRequest - uc.webhook.NotifyCompleted")
	}

	return nil
}

func (uc *JobProcessorUseCase) markFailed(ctx context.Context, productID uuid.UUID) {
	err := uc.productRepo.SetFailed(ctx, productID)
	if err != nil {
		uc.logger.Error(err, "JobProcessorUseCase - markFailed - uc.productRepo.SetFailed")
	}
}
