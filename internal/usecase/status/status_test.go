package status

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/entity"
	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

type fakeRequestRepo struct {
	request *entity.Request
	err     error
}

func (f *fakeRequestRepo) Create(context.Context, *entity.Request) error { return nil }

func (f *fakeRequestRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Request, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.request, nil
}

func (f *fakeRequestRepo) CompleteIfAllProductsDone(context.Context, uuid.UUID, time.Time) (bool, error) {
	return false, nil
}

type fakeProductRepo struct {
	products []*entity.Product
	err      error
}

func (f *fakeProductRepo) Create(context.Context, *entity.Product) error { return nil }

func (f *fakeProductRepo) GetByRequestID(context.Context, uuid.UUID) ([]*entity.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeProductRepo) SetCompleted(context.Context, uuid.UUID, []string, time.Time) error {
	return nil
}

func (f *fakeProductRepo) SetFailed(context.Context, uuid.UUID) error { return nil }

func TestRequestStatus(t *testing.T) {
	requestID := uuid.New()
	request := &entity.Request{ID: requestID, Status: entity.Pending, CreatedAt: time.Now()}
	products := []*entity.Product{
		{
			ID:              uuid.New(),
			RequestID:       requestID,
			ProductName:     "SKU1",
			InputImageURLs:  []string{"https://img.test/1.jpg"},
			OutputImageURLs: []string{"https://cdn.test/compressed/1.jpg"},
			Status:          entity.Completed,
		},
		{
			ID:          uuid.New(),
			RequestID:   requestID,
			ProductName: "SKU2",
			Status:      entity.Pending,
		},
	}

	uc := New(&fakeRequestRepo{request: request}, &fakeProductRepo{products: products}, nopLogger{})

	projection, err := uc.RequestStatus(context.Background(), requestID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if projection.RequestID != requestID {
		t.Error("request id mismatch")
	}
	if projection.Status != entity.Pending {
		t.Errorf("expected pending, got %s", projection.Status)
	}
	if len(projection.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(projection.Products))
	}

	if projection.Products[0].ProductName != "SKU1" {
		t.Errorf("expected SKU1, got %s", projection.Products[0].ProductName)
	}
	if len(projection.Products[0].OutputImageURLs) != 1 {
		t.Errorf("expected 1 output url, got %d", len(projection.Products[0].OutputImageURLs))
	}

	// nil slices must come out as empty, never null in JSON.
	if projection.Products[1].InputImageURLs == nil {
		t.Error("input urls must not be nil")
	}
	if projection.Products[1].OutputImageURLs == nil {
		t.Error("output urls must not be nil")
	}
}

func TestRequestStatusNotFound(t *testing.T) {
	notFound := fmt.Errorf("RequestRepo - GetByID: %w", errs.ErrRecordNotFound)
	uc := New(&fakeRequestRepo{err: notFound}, &fakeProductRepo{}, nopLogger{})

	_, err := uc.RequestStatus(context.Background(), uuid.New())
	if !errors.Is(err, errs.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestRequestStatusProductRepoError(t *testing.T) {
	repoErr := errors.New("db down")
	request := &entity.Request{ID: uuid.New(), Status: entity.Pending}
	uc := New(&fakeRequestRepo{request: request}, &fakeProductRepo{err: repoErr}, nopLogger{})

	_, err := uc.RequestStatus(context.Background(), request.ID)
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
}
