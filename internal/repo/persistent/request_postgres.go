package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/itshivams/image-processing-system/internal/entity"
	"github.com/itshivams/image-processing-system/pkg/postgres"
	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

const (
	// Table
	requestsTable = "requests"

	// Columns
	idColumn          = "id"
	statusColumn      = "status"
	createdAtColumn   = "created_at"
	completedAtColumn = "completed_at"
)

type RequestRepo struct {
	*postgres.Postgres
}

func NewRequestRepo(pg *postgres.Postgres) *RequestRepo {
	return &RequestRepo{pg}
}

func (r *RequestRepo) Create(ctx context.Context, request *entity.Request) error {
	sql, args, err := r.Builder.
		Insert(requestsTable).
		Columns(
			idColumn,
			statusColumn,
			createdAtColumn,
		).
		Values(
			request.ID,
			request.Status,
			request.CreatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("RequestRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("RequestRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *RequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	sql, args, err := r.Builder.
		Select(
			idColumn,
			statusColumn,
			createdAtColumn,
			completedAtColumn,
		).
		From(requestsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("RequestRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var request entity.Request
	err = executor.QueryRow(ctx, sql, args...).Scan(
		&request.ID,
		&request.Status,
		&request.CreatedAt,
		&request.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("RequestRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("RequestRepo - GetByID - executor.QueryRow: %w", err)
	}

	return &request, nil
}

// CompleteIfAllProductsDone is a single conditional UPDATE, so two jobs
// finishing the same request at the same instant elect exactly one winner.
func (r *RequestRepo) CompleteIfAllProductsDone(ctx context.Context, id uuid.UUID, completedAt time.Time) (bool, error) {
	sql, args, err := r.Builder.
		Update(requestsTable).
		Set(statusColumn, entity.Completed).
		Set(completedAtColumn, completedAt).
		Where(squirrel.Eq{
			idColumn:     id,
			statusColumn: entity.Pending,
		}).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM "+productsTable+" WHERE "+productRequestIDColumn+" = ? AND "+statusColumn+" <> ?)",
			id, entity.Completed,
		)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("RequestRepo - CompleteIfAllProductsDone - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("RequestRepo - CompleteIfAllProductsDone - executor.Exec: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
