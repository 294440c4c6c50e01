package merch

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/club-invaders/fanclub/internal/database"
	"github.com/club-invaders/fanclub/internal/entity"
)

var repoTracer = otel.Tracer("github.com/club-invaders/fanclub/repository/merch")

// ErrNotFound is returned when a merch item is missing.
var ErrNotFound = errors.New("merch item not found")

// Repository encapsulates read/write access for merch items.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by the configured connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// List returns all merch items, newest first.
func (r *Repository) List(ctx context.Context) ([]entity.MerchItem, error) {
	ctx, span := repoTracer.Start(ctx, "MerchRepository.List")
	defer span.End()

	var items []entity.MerchItem
	err := r.reader.NewSelect().
		Model(&items).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return items, nil
}

// GetByID fetches a single merch item.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.MerchItem, error) {
	ctx, span := repoTracer.Start(ctx, "MerchRepository.GetByID", trace.WithAttributes(attribute.Int64("merch.id", id)))
	defer span.End()

	item := new(entity.MerchItem)
	err := r.reader.NewSelect().Model(item).Where("m.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return item, nil
}

// Create persists a new merch item.
func (r *Repository) Create(ctx context.Context, item *entity.MerchItem) error {
	if item == nil {
		return errors.New("nil merch item")
	}
	ctx, span := repoTracer.Start(ctx, "MerchRepository.Create", trace.WithAttributes(attribute.String("merch.name", item.Name)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(item).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// Update rewrites the mutable columns of a merch item.
func (r *Repository) Update(ctx context.Context, item *entity.MerchItem) error {
	if item == nil {
		return errors.New("nil merch item")
	}
	ctx, span := repoTracer.Start(ctx, "MerchRepository.Update", trace.WithAttributes(attribute.Int64("merch.id", item.ID)))
	defer span.End()

	res, err := r.writer.NewUpdate().
		Model(item).
		Column("name", "price", "kids_price", "image").
		Set("updated_at = CURRENT_TIMESTAMP").
		WherePK().
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		span.SetStatus(codes.Error, "not found")
		return ErrNotFound
	}
	return nil
}

// Delete removes a merch item.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := repoTracer.Start(ctx, "MerchRepository.Delete", trace.WithAttributes(attribute.Int64("merch.id", id)))
	defer span.End()

	res, err := r.writer.NewDelete().
		Model((*entity.MerchItem)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		span.SetStatus(codes.Error, "not found")
		return ErrNotFound
	}
	return nil
}
