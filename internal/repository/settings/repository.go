package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/club-invaders/fanclub/internal/database"
	"github.com/club-invaders/fanclub/internal/entity"
)

var repoTracer = otel.Tracer("github.com/club-invaders/fanclub/repository/settings")

// ErrNotFound is returned when no row exists for a settings key.
var ErrNotFound = errors.New("setting not found")

// Repository encapsulates access to the key-value settings rows.
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

// GetByKey fetches the settings row for a logical key.
func (r *Repository) GetByKey(ctx context.Context, key string) (*entity.Setting, error) {
	ctx, span := repoTracer.Start(ctx, "SettingsRepository.GetByKey", trace.WithAttributes(attribute.String("settings.key", key)))
	defer span.End()

	setting := new(entity.Setting)
	err := r.reader.NewSelect().
		Model(setting).
		Where("s.key = ?", key).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return setting, nil
}

// Upsert stores a settings value: update when a row for the key exists,
// insert otherwise. This is a check-then-write, not an atomic upsert; two
// concurrent writers for the same key can race into duplicate rows or a
// lost update.
func (r *Repository) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	ctx, span := repoTracer.Start(ctx, "SettingsRepository.Upsert", trace.WithAttributes(attribute.String("settings.key", key)))
	defer span.End()

	existing, err := r.GetByKey(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "check failed")
		return err
	}

	if existing != nil {
		_, err = r.writer.NewUpdate().
			Model((*entity.Setting)(nil)).
			Set("value = ?", value).
			Set("updated_at = CURRENT_TIMESTAMP").
			Where("key = ?", key).
			Exec(ctx)
	} else {
		setting := &entity.Setting{Key: key, Value: value}
		_, err = r.writer.NewInsert().Model(setting).Exec(ctx)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
	}
	return err
}
