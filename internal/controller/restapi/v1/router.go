package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itshivams/image-processing-system/internal/usecase"
	"github.com/itshivams/image-processing-system/pkg/logger"
)

func NewRequestRoutes(apiV1Group fiber.Router, ing usecase.IngestionUseCase, st usecase.StatusUseCase, l logger.Interface) {
	r := &V1{ingestion: ing, status: st, logger: l}

	{
		// API
		apiV1Group.Post("/requests", r.createRequest)
		apiV1Group.Get("/status/:request_id", r.requestStatus)

		// UI
		apiV1Group.Get("/", r.showUI)
	}
}
