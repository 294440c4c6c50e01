package hero

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
	repo "github.com/club-invaders/fanclub/internal/repository/hero"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/club-invaders/fanclub/service/hero")

const listCacheKey = "heroes:list"

// Repository is the data access surface the service needs.
type Repository interface {
	List(ctx context.Context) ([]entity.Hero, error)
	GetByID(ctx context.Context, id int64) (*entity.Hero, error)
	Create(ctx context.Context, hero *entity.Hero) error
	Update(ctx context.Context, hero *entity.Hero) error
	Delete(ctx context.Context, id int64) error
}

// Service manages the roster: cached list reads degrading to the default
// roster, and admin mutations with eager invalidation.
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

// List returns the roster, newest first, serving the fixed defaults when
// the database read fails or comes back empty. A failure here never blocks
// other resources; each resource degrades independently.
func (s *Service) List(ctx context.Context) ([]entity.Hero, bool) {
	ctx, span := serviceTracer.Start(ctx, "HeroService.List")
	defer span.End()

	if heroes, err := s.listFromCache(ctx); err == nil {
		return heroes, false
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("heroes cache read failed", zap.Error(err))
		}
	}

	heroes, err := s.repo.List(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("heroes list failed; serving defaults", zap.Error(err))
		}
		span.RecordError(err)
		return defaults.Heroes(), true
	}
	if len(heroes) == 0 {
		return defaults.Heroes(), true
	}

	s.storeListInCache(ctx, heroes)
	return heroes, false
}

// Add creates a roster entry and invalidates the cached list once.
func (s *Service) Add(ctx context.Context, hero *entity.Hero) error {
	if err := validate(hero); err != nil {
		return err
	}
	ctx, span := serviceTracer.Start(ctx, "HeroService.Add", trace.WithAttributes(attribute.String("hero.name", hero.Name)))
	defer span.End()

	now := time.Now().UTC()
	hero.CreatedAt = now
	hero.UpdatedAt = now

	if err := s.repo.Create(ctx, hero); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create hero", errorbank.WithCause(err))
	}

	s.invalidateList(ctx)
	return nil
}

// Update rewrites a roster entry and invalidates the cached list once.
func (s *Service) Update(ctx context.Context, hero *entity.Hero) error {
	if err := validate(hero); err != nil {
		return err
	}
	ctx, span := serviceTracer.Start(ctx, "HeroService.Update", trace.WithAttributes(attribute.Int64("hero.id", hero.ID)))
	defer span.End()

	if err := s.repo.Update(ctx, hero); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("hero not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to update hero", errorbank.WithCause(err))
	}

	s.invalidateList(ctx)
	return nil
}

// Delete removes a roster entry and invalidates the cached list once.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "HeroService.Delete", trace.WithAttributes(attribute.Int64("hero.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("hero not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to delete hero", errorbank.WithCause(err))
	}

	s.invalidateList(ctx)
	return nil
}

// A jersey number may be blank; only name and position are required.
func validate(hero *entity.Hero) error {
	if hero == nil {
		return errorbank.BadRequest("hero payload is required")
	}
	if strings.TrimSpace(hero.Name) == "" {
		return errorbank.BadRequest("name is required", errorbank.WithDetail("field", "name"))
	}
	if strings.TrimSpace(hero.Position) == "" {
		return errorbank.BadRequest("position is required", errorbank.WithDetail("field", "position"))
	}
	return nil
}

func (s *Service) listFromCache(ctx context.Context) ([]entity.Hero, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	raw, err := s.cache.Get(ctx, listCacheKey)
	if err != nil {
		return nil, err
	}
	var heroes []entity.Hero
	if err := json.Unmarshal(raw, &heroes); err != nil {
		return nil, err
	}
	return heroes, nil
}

func (s *Service) storeListInCache(ctx context.Context, heroes []entity.Hero) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(heroes)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, listCacheKey, raw, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("heroes cache write failed", zap.Error(err))
	}
}

func (s *Service) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey); err != nil && s.logger != nil {
		s.logger.Warn("heroes cache invalidation failed", zap.Error(err))
	}
}
