package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/dto"
	"github.com/itshivams/image-processing-system/internal/entity"
	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

// recorder collects every repo call in order, so the test can assert
// products are created before their job events.
type recorder struct {
	ops []string

	requests []*entity.Request
	products []*entity.Product
	events   []*entity.OutboxEvent
}

type fakeRequestRepo struct {
	rec *recorder
	err error
}

func (f *fakeRequestRepo) Create(_ context.Context, request *entity.Request) error {
	if f.err != nil {
		return f.err
	}
	f.rec.ops = append(f.rec.ops, "request")
	f.rec.requests = append(f.rec.requests, request)
	return nil
}

func (f *fakeRequestRepo) GetByID(context.Context, uuid.UUID) (*entity.Request, error) {
	return nil, errs.ErrRecordNotFound
}

func (f *fakeRequestRepo) CompleteIfAllProductsDone(context.Context, uuid.UUID, time.Time) (bool, error) {
	return false, nil
}

type fakeProductRepo struct {
	rec *recorder
	err error
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if f.err != nil {
		return f.err
	}
	f.rec.ops = append(f.rec.ops, "product")
	f.rec.products = append(f.rec.products, product)
	return nil
}

func (f *fakeProductRepo) GetByRequestID(context.Context, uuid.UUID) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) SetCompleted(context.Context, uuid.UUID, []string, time.Time) error {
	return nil
}

func (f *fakeProductRepo) SetFailed(context.Context, uuid.UUID) error { return nil }

type fakeOutboxRepo struct {
	rec *recorder
	err error
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *entity.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.rec.ops = append(f.rec.ops, "event")
	f.rec.events = append(f.rec.events, event)
	return nil
}

func (f *fakeOutboxRepo) GetPendingEvents(context.Context, int, int) ([]*entity.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessingBatch(context.Context, uuid.UUIDs) error    { return nil }
func (f *fakeOutboxRepo) MarkAsProcessedBatch(context.Context, uuid.UUIDs) error     { return nil }
func (f *fakeOutboxRepo) IncrementRetryCountBatch(context.Context, uuid.UUIDs) error { return nil }
func (f *fakeOutboxRepo) MarkMaxRetriesAsFailed(context.Context, int) error          { return nil }
func (f *fakeOutboxRepo) DeleteOldProcessedAndFailed(context.Context) (int64, error) { return 0, nil }

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

const validCSV = "S. No.,Product Name,Input Image Urls\n" +
	"1,SKU1,\"https://img.test/1.jpg, https://img.test/2.jpg\"\n" +
	"2,SKU2,https://img.test/3.jpg\n"

func TestIngest(t *testing.T) {
	rec := &recorder{}
	tx := &fakeTransactor{}
	uc := New(&fakeRequestRepo{rec: rec}, &fakeProductRepo{rec: rec}, &fakeOutboxRepo{rec: rec}, tx, nopLogger{})

	requestID, count, err := uc.Ingest(context.Background(), strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requestID == uuid.Nil {
		t.Error("expected non-nil request id")
	}
	if count != 2 {
		t.Errorf("expected 2 products, got %d", count)
	}
	if tx.calls != 1 {
		t.Errorf("expected 1 transaction, got %d", tx.calls)
	}

	if len(rec.requests) != 1 || len(rec.products) != 2 || len(rec.events) != 2 {
		t.Fatalf("expected 1 request, 2 products, 2 events, got %d/%d/%d",
			len(rec.requests), len(rec.products), len(rec.events))
	}

	wantOps := []string{"request", "product", "event", "product", "event"}
	for i, op := range wantOps {
		if rec.ops[i] != op {
			t.Fatalf("op %d: expected %s, got %s", i, op, rec.ops[i])
		}
	}

	if rec.requests[0].Status != entity.Pending {
		t.Errorf("expected pending request, got %s", rec.requests[0].Status)
	}

	for i, product := range rec.products {
		if product.RequestID != requestID {
			t.Errorf("product %d: request id mismatch", i)
		}
		if product.Status != entity.Pending {
			t.Errorf("product %d: expected pending, got %s", i, product.Status)
		}
		if len(product.OutputImageURLs) != 0 {
			t.Errorf("product %d: expected no output urls yet", i)
		}
	}

	var job dto.Job
	if err := json.Unmarshal(rec.events[0].Payload, &job); err != nil {
		t.Fatalf("event payload is not a job: %v", err)
	}
	if job.ProductID != rec.products[0].ID {
		t.Error("job product id does not match the created product")
	}
	if job.RequestID != requestID {
		t.Error("job request id does not match the created request")
	}
	if len(job.InputImageURLs) != 2 {
		t.Errorf("expected 2 input urls in job, got %d", len(job.InputImageURLs))
	}
}

func TestIngestInvalidCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "missing column",
			input:   "S. No.,Input Image Urls\n1,https://img.test/1.jpg\n",
			wantErr: errs.ErrMissingColumn,
		},
		{
			name:    "no data rows",
			input:   "S. No.,Product Name,Input Image Urls\n",
			wantErr: errs.ErrEmptyCSV,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			tx := &fakeTransactor{}
			uc := New(&fakeRequestRepo{rec: rec}, &fakeProductRepo{rec: rec}, &fakeOutboxRepo{rec: rec}, tx, nopLogger{})

			_, _, err := uc.Ingest(context.Background(), strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			if tx.calls != 0 {
				t.Error("no transaction should start for an invalid csv")
			}
			if len(rec.ops) != 0 {
				t.Errorf("expected no repo calls, got %v", rec.ops)
			}
		})
	}
}

func TestIngestRepoError(t *testing.T) {
	rec := &recorder{}
	repoErr := errors.New("insert failed")
	uc := New(&fakeRequestRepo{rec: rec}, &fakeProductRepo{rec: rec, err: repoErr}, &fakeOutboxRepo{rec: rec}, &fakeTransactor{}, nopLogger{})

	_, _, err := uc.Ingest(context.Background(), strings.NewReader(validCSV))
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repo error, got %v", err)
	}

	if len(rec.events) != 0 {
		t.Error("no events should be created after a product insert failure")
	}
}
