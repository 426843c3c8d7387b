package v1

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/controller/restapi/v1/response"
	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

// createRequest accepts a multipart form with one CSV file, creates the
// request and its products, and returns the request id right away -
// processing happens asynchronously.
func (r *V1) createRequest(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "csv file is required")
	}

	if file.Size == 0 {
		return errorResponse(ctx, http.StatusBadRequest, "csv file is empty")
	}

	fileReader, err := file.Open()
	if err != nil {
		r.logger.Error(err, "restapi - v1 - createRequest")

		return errorResponse(ctx, http.StatusInternalServerError, "problems with opening the file")
	}
	defer fileReader.Close()

	requestID, productCount, err := r.ingestion.Ingest(ctx.UserContext(), fileReader)
	if err != nil {
		if errors.Is(err, errs.ErrMissingColumn) || errors.Is(err, errs.ErrEmptyCSV) {
			return errorResponse(ctx, http.StatusBadRequest, "invalid csv: "+rootCause(err))
		}
		r.logger.Error(err, "restapi - v1 - createRequest")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	resp := response.CreateRequest{
		RequestID:    requestID.String(),
		ProductCount: productCount,
		Message:      "Processing started",
	}

	return ctx.Status(http.StatusAccepted).JSON(resp)
}

func (r *V1) requestStatus(ctx *fiber.Ctx) error {
	requestID, err := uuid.Parse(ctx.Params("request_id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request id")
	}

	projection, err := r.status.RequestStatus(ctx.UserContext(), requestID)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "request not found")
		}
		r.logger.Error(err, "restapi - v1 - requestStatus")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(projection)
}

// rootCause returns the innermost error message for client responses, so
// callers see "missing required column" instead of the wrap chain.
func rootCause(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
