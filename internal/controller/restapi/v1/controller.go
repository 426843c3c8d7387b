package v1

import (
	"github.com/itshivams/image-processing-system/internal/usecase"
	"github.com/itshivams/image-processing-system/pkg/logger"
)

type V1 struct {
	ingestion usecase.IngestionUseCase
	status    usecase.StatusUseCase
	logger    logger.Interface
}
