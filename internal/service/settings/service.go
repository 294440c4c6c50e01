package settings

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/club-invaders/fanclub/internal/cache"
	"github.com/club-invaders/fanclub/internal/config"
	"github.com/club-invaders/fanclub/internal/defaults"
	"github.com/club-invaders/fanclub/internal/entity"
	repo "github.com/club-invaders/fanclub/internal/repository/settings"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/club-invaders/fanclub/service/settings")

// Repository is the data access surface the service needs.
type Repository interface {
	GetByKey(ctx context.Context, key string) (*entity.Setting, error)
	Upsert(ctx context.Context, key string, value json.RawMessage) error
}

// Service manages the two singleton settings rows: bank transfer info and
// the size guide. Reads degrade to defaults; writes go through the
// repository's check-then-write upsert.
type Service struct {
	repo     Repository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:     p.Repository,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		logger:   p.Logger,
	}
}

// BankInfo returns the payment instructions, falling back to the defaults
// when the row is absent or unreadable.
func (s *Service) BankInfo(ctx context.Context) (entity.BankTransferInfo, bool) {
	ctx, span := serviceTracer.Start(ctx, "SettingsService.BankInfo")
	defer span.End()

	var info entity.BankTransferInfo
	if ok := s.load(ctx, entity.SettingBankTransferInfo, &info); !ok {
		return defaults.BankTransferInfo(), true
	}
	return info, false
}

// UpdateBankInfo stores new payment instructions and invalidates the cached
// value once the write succeeds.
func (s *Service) UpdateBankInfo(ctx context.Context, info entity.BankTransferInfo) error {
	if strings.TrimSpace(info.BankName) == "" {
		return errorbank.BadRequest("bank name is required", errorbank.WithDetail("field", "bankName"))
	}
	if strings.TrimSpace(info.AccountName) == "" {
		return errorbank.BadRequest("account name is required", errorbank.WithDetail("field", "accountName"))
	}
	if strings.TrimSpace(info.AccountNumber) == "" {
		return errorbank.BadRequest("account number is required", errorbank.WithDetail("field", "accountNumber"))
	}
	return s.store(ctx, entity.SettingBankTransferInfo, info, "failed to update bank information")
}

// SizeGuide returns the measurement tables, falling back to the defaults
// when the row is absent or unreadable.
func (s *Service) SizeGuide(ctx context.Context) (entity.SizeGuide, bool) {
	ctx, span := serviceTracer.Start(ctx, "SettingsService.SizeGuide")
	defer span.End()

	var guide entity.SizeGuide
	if ok := s.load(ctx, entity.SettingSizeGuide, &guide); !ok {
		return defaults.SizeGuide(), true
	}
	return guide, false
}

// UpdateSizeGuide stores new measurement tables and invalidates the cached
// value once the write succeeds.
func (s *Service) UpdateSizeGuide(ctx context.Context, guide entity.SizeGuide) error {
	return s.store(ctx, entity.SettingSizeGuide, guide, "failed to update size guide")
}

// load reads a settings value through the cache. Returns false when the
// caller should use defaults.
func (s *Service) load(ctx context.Context, key string, out any) bool {
	cacheKey := "settings:" + key

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
			if json.Unmarshal(raw, out) == nil {
				return true
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			if s.logger != nil {
				s.logger.Warn("settings cache read failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	setting, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) && s.logger != nil {
			s.logger.Warn("settings read failed; serving defaults", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(setting.Value, out); err != nil {
		if s.logger != nil {
			s.logger.Warn("settings value corrupt; serving defaults", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, setting.Value, s.cacheTTL); err != nil && s.logger != nil {
			s.logger.Warn("settings cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return true
}

func (s *Service) store(ctx context.Context, key string, value any, failMsg string) error {
	ctx, span := serviceTracer.Start(ctx, "SettingsService.Update", trace.WithAttributes(attribute.String("settings.key", key)))
	defer span.End()

	raw, err := json.Marshal(value)
	if err != nil {
		return errorbank.BadRequest("invalid settings payload", errorbank.WithCause(err))
	}

	if err := s.repo.Upsert(ctx, key, raw); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal(failMsg, errorbank.WithCause(err))
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, "settings:"+key); err != nil && s.logger != nil {
			s.logger.Warn("settings cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}
