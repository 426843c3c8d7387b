package status

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/dto"
	"github.com/itshivams/image-processing-system/internal/repo"
	"github.com/itshivams/image-processing-system/pkg/logger"
)

type StatusUseCase struct {
	requestRepo repo.RequestRepo
	productRepo repo.ProductRepo

	logger logger.Interface
}

func New(requestRepo repo.RequestRepo, productRepo repo.ProductRepo, l logger.Interface) *StatusUseCase {
	return &StatusUseCase{
		requestRepo: requestRepo,
		productRepo: productRepo,
		logger:      l,
	}
}

func (uc *StatusUseCase) RequestStatus(ctx context.Context, requestID uuid.UUID) (*dto.RequestStatus, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("StatusUseCase - RequestStatus - uc.requestRepo.GetByID: %w", err)
	}

	products, err := uc.productRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("StatusUseCase - RequestStatus - uc.productRepo.GetByRequestID: %w", err)
	}

	projection := &dto.RequestStatus{
		RequestID: request.ID,
		Status:    request.Status,
		Products:  make([]dto.ProductStatus, 0, len(products)),
	}

	for _, product := range products {
		inputURLs := product.InputImageURLs
		if inputURLs == nil {
			inputURLs = []string{}
		}
		outputURLs := product.OutputImageURLs
		if outputURLs == nil {
			outputURLs = []string{}
		}

		projection.Products = append(projection.Products, dto.ProductStatus{
			ID:              product.ID,
			ProductName:     product.ProductName,
			InputImageURLs:  inputURLs,
			OutputImageURLs: outputURLs,
			Status:          product.Status,
		})
	}

	return projection, nil
}
