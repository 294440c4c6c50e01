package hero

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

var repoTracer = otel.Tracer("github.com/club-invaders/fanclub/repository/hero")

// ErrNotFound is returned when a roster entry is missing.
var ErrNotFound = errors.New("hero not found")

// Repository encapsulates read/write access for roster entries.
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

// List returns the whole roster, newest first.
func (r *Repository) List(ctx context.Context) ([]entity.Hero, error) {
	ctx, span := repoTracer.Start(ctx, "HeroRepository.List")
	defer span.End()

	var heroes []entity.Hero
	err := r.reader.NewSelect().
		Model(&heroes).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return heroes, nil
}

// GetByID fetches a single roster entry.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Hero, error) {
	ctx, span := repoTracer.Start(ctx, "HeroRepository.GetByID", trace.WithAttributes(attribute.Int64("hero.id", id)))
	defer span.End()

	hero := new(entity.Hero)
	err := r.reader.NewSelect().Model(hero).Where("h.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return hero, nil
}

// Create persists a new roster entry.
func (r *Repository) Create(ctx context.Context, hero *entity.Hero) error {
	if hero == nil {
		return errors.New("nil hero")
	}
	ctx, span := repoTracer.Start(ctx, "HeroRepository.Create", trace.WithAttributes(attribute.String("hero.name", hero.Name)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(hero).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// Update rewrites the mutable columns of a roster entry.
func (r *Repository) Update(ctx context.Context, hero *entity.Hero) error {
	if hero == nil {
		return errors.New("nil hero")
	}
	ctx, span := repoTracer.Start(ctx, "HeroRepository.Update", trace.WithAttributes(attribute.Int64("hero.id", hero.ID)))
	defer span.End()

	res, err := r.writer.NewUpdate().
		Model(hero).
		Column("name", "position", "number", "image").
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

// Delete removes a roster entry.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := repoTracer.Start(ctx, "HeroRepository.Delete", trace.WithAttributes(attribute.Int64("hero.id", id)))
	defer span.End()

	res, err := r.writer.NewDelete().
		Model((*entity.Hero)(nil)).
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
