package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/club-invaders/fanclub/internal/cache"
	cartdomain "github.com/club-invaders/fanclub/internal/cart"
	"github.com/club-invaders/fanclub/internal/config"
	"github.com/club-invaders/fanclub/internal/entity"
	merchsvc "github.com/club-invaders/fanclub/internal/service/merch"
	ordersvc "github.com/club-invaders/fanclub/internal/service/order"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/club-invaders/fanclub/service/cart")

// ProductSource resolves the product a session is opened for.
type ProductSource interface {
	Get(ctx context.Context, id int64) (*entity.MerchItem, error)
}

// OrderCreator persists the order produced at submit time.
type OrderCreator interface {
	Create(ctx context.Context, order *entity.Order) error
}

// Service runs server-side checkout sessions. Sessions live in the cache
// store under a TTL and are gone on submit or close; an abandoned session
// simply expires.
type Service struct {
	store      cache.Store
	sessionTTL time.Duration
	merch      ProductSource
	orders     OrderCreator
	logger     *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Cache  cache.Store
	Config config.Config
	Merch  *merchsvc.Service
	Orders *ordersvc.Service
	Logger *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		store:      p.Cache,
		sessionTTL: p.Config.Cart.SessionTTL,
		merch:      p.Merch,
		orders:     p.Orders,
		logger:     p.Logger,
	}
}

// SubmitRequest carries the customer fields required at submission time.
type SubmitRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	TransferSlipURI string `json:"transferSlipUri,omitempty"`
}

// Open starts a checkout session for a product with the selection reset to
// defaults. The product may come from the fallback catalogue when the
// database is unreachable; checkout keeps working either way.
func (s *Service) Open(ctx context.Context, productID int64) (*cartdomain.Session, error) {
	ctx, span := serviceTracer.Start(ctx, "CartService.Open", trace.WithAttributes(attribute.Int64("merch.id", productID)))
	defer span.End()

	product, err := s.merch.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	session := cartdomain.NewSession(uuid.NewString(), *product)
	if err := s.save(ctx, session); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session store failed")
		return nil, err
	}
	return session, nil
}

// Get loads an open session.
func (s *Service) Get(ctx context.Context, id string) (*cartdomain.Session, error) {
	ctx, span := serviceTracer.Start(ctx, "CartService.Get", trace.WithAttributes(attribute.String("cart.id", id)))
	defer span.End()
	return s.load(ctx, id)
}

// UpdateSelection merges a partial selection change into a session.
func (s *Service) UpdateSelection(ctx context.Context, id string, update cartdomain.Update) (*cartdomain.Session, error) {
	ctx, span := serviceTracer.Start(ctx, "CartService.UpdateSelection", trace.WithAttributes(attribute.String("cart.id", id)))
	defer span.End()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.Apply(update); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddItem validates the current selection and appends it to the session cart.
func (s *Service) AddItem(ctx context.Context, id string) (*cartdomain.Session, error) {
	ctx, span := serviceTracer.Start(ctx, "CartService.AddItem", trace.WithAttributes(attribute.String("cart.id", id)))
	defer span.End()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := session.AddItem(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RemoveItem drops one cart line from the session.
func (s *Service) RemoveItem(ctx context.Context, id string, index int) (*cartdomain.Session, error) {
	ctx, span := serviceTracer.Start(ctx, "CartService.RemoveItem", trace.WithAttributes(
		attribute.String("cart.id", id),
		attribute.Int("cart.index", index),
	))
	defer span.End()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.RemoveItem(index); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit turns the session cart into one persisted order and discards the
// session. The total is recomputed here from the line prices; the order
// goes in as pending regardless of anything the client sent.
func (s *Service) Submit(ctx context.Context, id string, req SubmitRequest) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "CartService.Submit", trace.WithAttributes(attribute.String("cart.id", id)))
	defer span.End()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	session.CustomerName = strings.TrimSpace(req.CustomerName)
	session.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	session.TransferSlipURI = req.TransferSlipURI

	if err := session.ValidateSubmit(); err != nil {
		return nil, err
	}

	order := &entity.Order{
		CustomerName:    session.CustomerName,
		CustomerPhone:   session.CustomerPhone,
		TotalPrice:      cartdomain.FormatTotal(session.Total()),
		TransferSlipURI: session.TransferSlipURI,
		Items:           make([]*entity.OrderItem, 0, len(session.Items)),
	}
	for _, item := range session.Items {
		order.Items = append(order.Items, &entity.OrderItem{
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Price:        item.Price,
			Size:         item.Size,
			SizeCategory: item.SizeCategory,
			SleeveType:   item.SleeveType,
			JerseyName:   item.JerseyName,
			JerseyNumber: item.JerseyNumber,
			Quantity:     item.Quantity,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order create failed")
		return nil, err
	}

	s.discard(ctx, id)
	return order, nil
}

// Close discards a session without submitting.
func (s *Service) Close(ctx context.Context, id string) error {
	ctx, span := serviceTracer.Start(ctx, "CartService.Close", trace.WithAttributes(attribute.String("cart.id", id)))
	defer span.End()
	s.discard(ctx, id)
	return nil
}

func sessionKey(id string) string {
	return "cart:" + id
}

func (s *Service) load(ctx context.Context, id string) (*cartdomain.Session, error) {
	if id == "" {
		return nil, errorbank.BadRequest("cart session id is required")
	}
	raw, err := s.store.Get(ctx, sessionKey(id))
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, errorbank.NotFound("cart session not found or expired")
	}
	if err != nil {
		return nil, errorbank.Internal("failed to load cart session", errorbank.WithCause(err))
	}
	session := new(cartdomain.Session)
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, errorbank.Internal("corrupt cart session", errorbank.WithCause(err))
	}
	return session, nil
}

func (s *Service) save(ctx context.Context, session *cartdomain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return errorbank.Internal("failed to encode cart session", errorbank.WithCause(err))
	}
	if err := s.store.Set(ctx, sessionKey(session.ID), raw, s.sessionTTL); err != nil {
		return errorbank.Internal("failed to store cart session", errorbank.WithCause(err))
	}
	return nil
}

func (s *Service) discard(ctx context.Context, id string) {
	if err := s.store.Delete(ctx, sessionKey(id)); err != nil && s.logger != nil {
		s.logger.Warn("cart session discard failed", zap.String("id", id), zap.Error(err))
	}
}
