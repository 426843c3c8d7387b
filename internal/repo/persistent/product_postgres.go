package persistent

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/itshivams/image-processing-system/internal/entity"
	"github.com/itshivams/image-processing-system/pkg/postgres"
	"github.com/itshivams/image-processing-system/pkg/types/errs"
)

const (
	// Table
	productsTable = "products"

	// Columns
	productRequestIDColumn  = "request_id"
	productNameColumn       = "product_name"
	inputImageURLsColumn    = "input_image_urls"
	outputImageURLsColumn   = "output_image_urls"
	productProcessedAtColum = "processed_at"
)

type ProductRepo struct {
	*postgres.Postgres
}

func NewProductRepo(pg *postgres.Postgres) *ProductRepo {
	return &ProductRepo{pg}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	sql, args, err := r.Builder.
		Insert(productsTable).
		Columns(
			idColumn,
			productRequestIDColumn,
			productNameColumn,
			inputImageURLsColumn,
			outputImageURLsColumn,
			statusColumn,
			createdAtColumn,
		).
		Values(
			product.ID,
			product.RequestID,
			product.ProductName,
			product.InputImageURLs,
			product.OutputImageURLs,
			product.Status,
			product.CreatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("ProductRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ProductRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *ProductRepo) GetByRequestID(ctx context.Context, requestID uuid.UUID) ([]*entity.Product, error) {
	sql, args, err := r.Builder.
		Select(
			idColumn,
			productRequestIDColumn,
			productNameColumn,
			inputImageURLsColumn,
			outputImageURLsColumn,
			statusColumn,
			createdAtColumn,
			productProcessedAtColum,
		).
		From(productsTable).
		Where(squirrel.Eq{productRequestIDColumn: requestID}).
		OrderBy(createdAtColumn + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ProductRepo - GetByRequestID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ProductRepo - GetByRequestID - executor.Query: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var product entity.Product
		err = rows.Scan(
			&product.ID,
			&product.RequestID,
			&product.ProductName,
			&product.InputImageURLs,
			&product.OutputImageURLs,
			&product.Status,
			&product.CreatedAt,
			&product.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ProductRepo - GetByRequestID - rows.Scan: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ProductRepo - GetByRequestID - rows.Err: %w", err)
	}

	return products, nil
}

func (r *ProductRepo) SetCompleted(ctx context.Context, id uuid.UUID, outputImageURLs []string, processedAt time.Time) error {
	sql, args, err := r.Builder.
		Update(productsTable).
		Set(outputImageURLsColumn, outputImageURLs).
		Set(statusColumn, entity.Completed).
		Set(productProcessedAtColum, processedAt).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ProductRepo - SetCompleted - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ProductRepo - SetCompleted - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ProductRepo - SetCompleted: %w", errs.ErrRecordNotFound)
	}

	return nil
}

// SetFailed leaves output_image_urls untouched (empty): outputs accumulated
// before the failure are discarded, a queue retry redoes the whole product.
func (r *ProductRepo) SetFailed(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.Builder.
		Update(productsTable).
		Set(statusColumn, entity.Failed).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ProductRepo - SetFailed - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ProductRepo - SetFailed - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ProductRepo - SetFailed: %w", errs.ErrRecordNotFound)
	}

	return nil
}
