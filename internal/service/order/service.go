package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/club-invaders/fanclub/internal/cache"
	"github.com/club-invaders/fanclub/internal/config"
	"github.com/club-invaders/fanclub/internal/entity"
	"github.com/club-invaders/fanclub/internal/messaging"
	repo "github.com/club-invaders/fanclub/internal/repository/order"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/club-invaders/fanclub/service/order")

const listCacheKey = "orders:list"

// Repository is the data access surface the service needs.
type Repository interface {
	Create(ctx context.Context, order *entity.Order) error
	List(ctx context.Context) ([]*entity.Order, error)
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error
	Delete(ctx context.Context, id int64) error
}

// Service encapsulates business logic around orders: creation with forced
// pending status, list caching, status updates, and event publishing.
type Service struct {
	repo      Repository
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// Create persists a new order. The status is always forced to pending no
// matter what the caller supplied; the cached list is invalidated only after
// the write succeeds.
func (s *Service) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errorbank.BadRequest("order payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(
		attribute.String("order.customer", order.CustomerName),
		attribute.Int("order.items", len(order.Items)),
	))
	defer span.End()

	order.Status = entity.StatusPending
	if order.CreatedAt.IsZero() {
		now := time.Now().UTC()
		order.CreatedAt = now
		order.UpdatedAt = now
	}

	if err := s.repo.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create order", errorbank.WithCause(err))
	}

	s.invalidateList(ctx)
	s.publishOrderCreated(ctx, order)
	return nil
}

// List returns all orders, newest first, consulting the cache before the
// database. Unlike content resources there is no fallback here; a read
// failure propagates.
func (s *Service) List(ctx context.Context) ([]*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.List")
	defer span.End()

	if orders, err := s.listFromCache(ctx); err == nil {
		return orders, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("orders cache read failed", zap.Error(err))
		}
	}

	orders, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load orders", errorbank.WithCause(err))
	}

	s.storeListInCache(ctx, orders)
	return orders, nil
}

// Get returns a single order by id.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}
	return order, nil
}

// UpdateStatus sets an order's status. Any of the five values is accepted in
// any order; there is no transition graph.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error {
	if !entity.ValidStatus(status) {
		return errorbank.BadRequest("unknown order status", errorbank.WithDetail("status", string(status)))
	}
	ctx, span := serviceTracer.Start(ctx, "OrderService.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to update order status", errorbank.WithCause(err))
	}

	s.invalidateList(ctx)
	return nil
}

// Delete removes an order permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to delete order", errorbank.WithCause(err))
	}

	s.invalidateList(ctx)
	return nil
}

func (s *Service) listFromCache(ctx context.Context) ([]*entity.Order, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	raw, err := s.cache.Get(ctx, listCacheKey)
	if err != nil {
		return nil, err
	}
	var orders []*entity.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Service) storeListInCache(ctx context.Context, orders []*entity.Order) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(orders)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, listCacheKey, raw, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("orders cache write failed", zap.Error(err))
	}
}

// invalidateList drops the whole cached list. Coarse but correct: the next
// read refetches from the database.
func (s *Service) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey); err != nil && s.logger != nil {
		s.logger.Warn("orders cache invalidation failed", zap.Error(err))
	}
}

func (s *Service) publishOrderCreated(ctx context.Context, order *entity.Order) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderCreatedEvent{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		TotalPrice:    order.TotalPrice,
		Status:        string(order.Status),
		ItemCount:     len(order.Items),
		CreatedAt:     order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal order created", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", order.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish order created", zap.Error(err))
		}
	}
}

// OrderCreatedEvent is emitted when a new order is persisted.
type OrderCreatedEvent struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	TotalPrice    string    `json:"totalPrice"`
	Status        string    `json:"status"`
	ItemCount     int       `json:"itemCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
