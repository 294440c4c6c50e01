package merch

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
	repo "github.com/club-invaders/fanclub/internal/repository/merch"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/club-invaders/fanclub/service/merch")

const listCacheKey = "merch:list"

// Repository is the data access surface the service needs.
type Repository interface {
	List(ctx context.Context) ([]entity.MerchItem, error)
	GetByID(ctx context.Context, id int64) (*entity.MerchItem, error)
	Create(ctx context.Context, item *entity.MerchItem) error
	Update(ctx context.Context, item *entity.MerchItem) error
	Delete(ctx context.Context, id int64) error
}

// Service encapsulates the merch catalogue: cached list reads that degrade
// to hard-coded defaults, and admin mutations with eager invalidation.
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

// List returns the merch catalogue, newest first. When the database read
// fails or comes back empty the fixed default items are served instead;
// the second return value reports that degradation so callers can surface
// it rather than have it hidden inside the fetch.
func (s *Service) List(ctx context.Context) ([]entity.MerchItem, bool) {
	ctx, span := serviceTracer.Start(ctx, "MerchService.List")
	defer span.End()

	if items, err := s.listFromCache(ctx); err == nil {
		return items, false
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("merch cache read failed", zap.Error(err))
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("merch list failed; serving defaults", zap.Error(err))
		}
		span.RecordError(err)
		return defaults.MerchItems(), true
	}
	if len(items) == 0 {
		return defaults.MerchItems(), true
	}

	s.storeListInCache(ctx, items)
	return items, false
}

// Get resolves a single product by id, falling back to the default
// catalogue when the database row is unreachable. Checkout must keep
// working against placeholder content.
func (s *Service) Get(ctx context.Context, id int64) (*entity.MerchItem, error) {
	ctx, span := serviceTracer.Start(ctx, "MerchService.Get", trace.WithAttributes(attribute.Int64("merch.id", id)))
	defer span.End()

	item, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		for _, d := range defaults.MerchItems() {
			if d.ID == id {
				fallback := d
				return &fallback, nil
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load merch item", errorbank.WithCause(err))
	}
	return nil, errorbank.NotFound("merch item not found")
}

// Add creates a new product and invalidates the cached list once.
func (s *Service) Add(ctx context.Context, item *entity.MerchItem) error {
	if err := validate(item); err != nil {
		return err
	}
	ctx, span := serviceTracer.Start(ctx, "MerchService.Add", trace.WithAttributes(attribute.String("merch.name", item.Name)))
	defer span.End()

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.Create(ctx, item); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create merch item", errorbank.WithCause(err))
	}

	s.invalidateList(ctx)
	return nil
}

// Update rewrites a product and invalidates the cached list once.
func (s *Service) Update(ctx context.Context, item *entity.MerchItem) error {
	if err := validate(item); err != nil {
		return err
	}
	ctx, span := serviceTracer.Start(ctx, "MerchService.Update", trace.WithAttributes(attribute.Int64("merch.id", item.ID)))
	defer span.End()

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("merch item not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to update merch item", errorbank.WithCause(err))
	}

	s.invalidateList(ctx)
	return nil
}

// Delete removes a product and invalidates the cached list once.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "MerchService.Delete", trace.WithAttributes(attribute.Int64("merch.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("merch item not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to delete merch item", errorbank.WithCause(err))
	}

	s.invalidateList(ctx)
	return nil
}

func validate(item *entity.MerchItem) error {
	if item == nil {
		return errorbank.BadRequest("merch payload is required")
	}
	if strings.TrimSpace(item.Name) == "" {
		return errorbank.BadRequest("name is required", errorbank.WithDetail("field", "name"))
	}
	if strings.TrimSpace(item.Price) == "" {
		return errorbank.BadRequest("price is required", errorbank.WithDetail("field", "price"))
	}
	if strings.TrimSpace(item.KidsPrice) == "" {
		item.KidsPrice = item.Price
	}
	return nil
}

func (s *Service) listFromCache(ctx context.Context) ([]entity.MerchItem, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	raw, err := s.cache.Get(ctx, listCacheKey)
	if err != nil {
		return nil, err
	}
	var items []entity.MerchItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) storeListInCache(ctx context.Context, items []entity.MerchItem) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, listCacheKey, raw, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("merch cache write failed", zap.Error(err))
	}
}

func (s *Service) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey); err != nil && s.logger != nil {
		s.logger.Warn("merch cache invalidation failed", zap.Error(err))
	}
}
