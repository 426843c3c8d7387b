package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

type fakeOutboxRepo struct {
	processingIDs uuid.UUIDs
	processedIDs  uuid.UUIDs
	retriedIDs    uuid.UUIDs
	deleted       int64
	err           error
}

func (f *fakeOutboxRepo) Create(context.Context, *entity.OutboxEvent) error { return nil }

func (f *fakeOutboxRepo) GetPendingEvents(context.Context, int, int) ([]*entity.OutboxEvent, error) {
	return nil, f.err
}

func (f *fakeOutboxRepo) MarkAsProcessingBatch(_ context.Context, ids uuid.UUIDs) error {
	f.processingIDs = ids
	return f.err
}

func (f *fakeOutboxRepo) MarkAsProcessedBatch(_ context.Context, ids uuid.UUIDs) error {
	f.processedIDs = ids
	return f.err
}

func (f *fakeOutboxRepo) IncrementRetryCountBatch(_ context.Context, ids uuid.UUIDs) error {
	f.retriedIDs = ids
	return f.err
}

func (f *fakeOutboxRepo) MarkMaxRetriesAsFailed(context.Context, int) error { return f.err }

func (f *fakeOutboxRepo) DeleteOldProcessedAndFailed(context.Context) (int64, error) {
	return f.deleted, f.err
}

func TestBatchOperationsPassEventIDs(t *testing.T) {
	events := []*entity.OutboxEvent{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}

	repo := &fakeOutboxRepo{}
	uc := New(repo, nopLogger{})

	if err := uc.MarkAsProcessingBatch(context.Background(), events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.MarkAsProcessedBatch(context.Background(), events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.IncrementRetryCountBatch(context.Background(), events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, ids := range map[string]uuid.UUIDs{
		"processing": repo.processingIDs,
		"processed":  repo.processedIDs,
		"retried":    repo.retriedIDs,
	} {
		if len(ids) != len(events) {
			t.Fatalf("%s: expected %d ids, got %d", name, len(events), len(ids))
		}
		for i, event := range events {
			if ids[i] != event.ID {
				t.Errorf("%s: id %d mismatch", name, i)
			}
		}
	}
}

func TestCleanupOutbox(t *testing.T) {
	uc := New(&fakeOutboxRepo{deleted: 5}, nopLogger{})

	if err := uc.CleanupOutbox(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRepoErrorsAreWrapped(t *testing.T) {
	repoErr := errors.New("db down")
	uc := New(&fakeOutboxRepo{err: repoErr}, nopLogger{})

	if _, err := uc.GetPendingEvents(context.Background(), 3, 100); !errors.Is(err, repoErr) {
		t.Errorf("GetPendingEvents: expected wrapped repo error, got %v", err)
	}
	if err := uc.MarkMaxRetriesAsFailed(context.Background(), 3); !errors.Is(err, repoErr) {
		t.Errorf("MarkMaxRetriesAsFailed: expected wrapped repo error, got %v", err)
	}
	if err := uc.CleanupOutbox(context.Background()); !errors.Is(err, repoErr) {
		t.Errorf("CleanupOutbox: expected wrapped repo error, got %v", err)
	}
}
