package restapi

import (
	"github.com/gofiber/fiber/v2"

	v1 "github.com/itshivams/image-processing-system/internal/controller/restapi/v1"
	"github.com/itshivams/image-processing-system/internal/usecase"
	"github.com/itshivams/image-processing-system/pkg/logger"
)

func NewRouter(app *fiber.App, ing usecase.IngestionUseCase, st usecase.StatusUseCase, l logger.Interface) {
	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewRequestRoutes(apiV1Group, ing, st, l)
	}
}
