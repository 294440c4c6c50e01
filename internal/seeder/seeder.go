package seeder

import (
	"context"
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/club-invaders/fanclub/internal/database"
	"github.com/club-invaders/fanclub/internal/defaults"
	"github.com/club-invaders/fanclub/internal/entity"
)

// Module exposes the seeder to Fx.
var Module = fx.Provide(New)

// Seeder loads the fallback catalogue, roster and settings into the
// database so a fresh install serves the same content it would fall back to.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// All runs every seed step.
func (s *Seeder) All(ctx context.Context) error {
	if err := s.Merch(ctx); err != nil {
		return err
	}
	if err := s.Heroes(ctx); err != nil {
		return err
	}
	return s.Settings(ctx)
}

// Merch seeds the merch catalogue if the table is empty.
func (s *Seeder) Merch(ctx context.Context) error {
	count, err := s.db.NewSelect().Model((*entity.MerchItem)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	items := defaults.MerchItems()
	for i := range items {
		items[i].ID = 0
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}
	if _, err := s.db.NewInsert().Model(&items).Exec(ctx); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("seeded merch items", zap.Int("count", len(items)))
	}
	return nil
}

// Heroes seeds the team roster if the table is empty.
func (s *Seeder) Heroes(ctx context.Context) error {
	count, err := s.db.NewSelect().Model((*entity.Hero)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	heroes := defaults.Heroes()
	for i := range heroes {
		heroes[i].ID = 0
		heroes[i].CreatedAt = now
		heroes[i].UpdatedAt = now
	}
	if _, err := s.db.NewInsert().Model(&heroes).Exec(ctx); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("seeded heroes", zap.Int("count", len(heroes)))
	}
	return nil
}

// Settings seeds the bank info and size guide rows if their keys are absent.
func (s *Seeder) Settings(ctx context.Context) error {
	if err := s.seedSetting(ctx, entity.SettingBankTransferInfo, defaults.BankTransferInfo()); err != nil {
		return err
	}
	return s.seedSetting(ctx, entity.SettingSizeGuide, defaults.SizeGuide())
}

func (s *Seeder) seedSetting(ctx context.Context, key string, value any) error {
	count, err := s.db.NewSelect().Model((*entity.Setting)(nil)).
		Where("s.key = ?", key).
		Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	setting := entity.Setting{
		Key:       key,
		Value:     json.RawMessage(raw),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.db.NewInsert().Model(&setting).Exec(ctx); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("seeded setting", zap.String("key", key))
	}
	return nil
}
