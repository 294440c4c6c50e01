package hero

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
	service "github.com/club-invaders/fanclub/internal/service/hero"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/club-invaders/fanclub/transport/http/hero")

// Handler exposes team roster endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a hero Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes on the Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/heroes")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

type payload struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Number   string `json:"number"`
	Image    string `json:"image"`
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "heroes.list")
	defer span.End()

	heroes, fallback := h.svc.List(ctx)
	if fallback {
		b.WithMeta("fallback", true)
	}
	return b.WithData(dto.FromHeroes(heroes)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var p payload
	if err := c.Bind(&p); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	hero := &entity.Hero{
		Name:     p.Name,
		Position: p.Position,
		Number:   p.Number,
		Image:    p.Image,
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "heroes.create", trace.WithAttributes(attribute.String("hero.name", p.Name)))
	defer span.End()

	if err := h.svc.Add(ctx, hero); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.FromHero(*hero)).Build()
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

	hero := &entity.Hero{
		ID:       id,
		Name:     p.Name,
		Position: p.Position,
		Number:   p.Number,
		Image:    p.Image,
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "heroes.update", trace.WithAttributes(attribute.Int64("hero.id", id)))
	defer span.End()

	if err := h.svc.Update(ctx, hero); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.FromHero(*hero)).Build()
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "heroes.delete", trace.WithAttributes(attribute.Int64("hero.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusNoContent).Build()
}
