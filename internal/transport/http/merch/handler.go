package merch

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/club-invaders/fanclub/internal/dto"
	"github.com/club-invaders/fanclub/internal/entity"
	"github.com/club-invaders/fanclub/internal/presentation/http/response"
	service "github.com/club-invaders/fanclub/internal/service/merch"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/club-invaders/fanclub/transport/http/merch")

// Handler exposes merch catalogue endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a merch Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes on the Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/merch")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type payload struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	KidsPrice string `json:"kidsPrice"`
	Image     string `json:"image"`
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "merch.list")
	defer span.End()

	items, fallback := h.svc.List(ctx)
	if fallback {
		b.WithMeta("fallback", true)
	}
	return b.WithData(dto.FromMerchItems(items)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var p payload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	item := &entity.MerchItem{
		Name:      p.Name,
		Price:     p.Price,
		KidsPrice: p.KidsPrice,
		Image:     p.Image,
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "merch.create", trace.WithAttributes(attribute.String("merch.name", p.Name)))
	defer span.End()

	if err := h.svc.Add(ctx, item); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.FromMerchItem(*item)).Build()
}

func (h *Handler) update(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var p payload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	item := &entity.MerchItem{
		ID:        id,
		Name:      p.Name,
		Price:     p.Price,
		KidsPrice: p.KidsPrice,
		Image:     p.Image,
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "merch.update", trace.WithAttributes(attribute.Int64("merch.id", id)))
	defer span.End()

	if err := h.svc.Update(ctx, item); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.FromMerchItem(*item)).Build()
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "merch.delete", trace.WithAttributes(attribute.Int64("merch.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusNoContent).Build()
}
