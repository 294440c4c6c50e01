package cart

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	cartdomain "github.com/club-invaders/fanclub/internal/cart"
	"github.com/club-invaders/fanclub/internal/dto"
	"github.com/club-invaders/fanclub/internal/presentation/http/response"
	service "github.com/club-invaders/fanclub/internal/service/cart"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/club-invaders/fanclub/transport/http/cart")

// Handler exposes checkout session endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a cart Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes on the Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/cart")
	g.POST("", h.open)
	g.GET("/:id", h.get)
	g.PUT("/:id/selection", h.updateSelection)
	g.POST("/:id/items", h.addItem)
	g.DELETE("/:id/items/:index", h.removeItem)
	g.POST("/:id/submit", h.submit)
	g.DELETE("/:id", h.close)
}

func (h *Handler) open(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		ProductID int64 `json:"productId"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if payload.ProductID == 0 {
		return b.WithError(errorbank.BadRequest("productId is required")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "cart.open", trace.WithAttributes(attribute.Int64("merch.id", payload.ProductID)))
	defer span.End()

	session, err := h.svc.Open(ctx, payload.ProductID)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.FromCartSession(session)).Build()
}

func (h *Handler) get(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "cart.get", trace.WithAttributes(attribute.String("cart.id", c.Param("id"))))
	defer span.End()

	session, err := h.svc.Get(ctx, c.Param("id"))
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.FromCartSession(session)).Build()
}

func (h *Handler) updateSelection(c echo.Context) error {
	b := response.New(c)

	var update cartdomain.Update
	if err := c.Bind(&update); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "cart.updateSelection", trace.WithAttributes(attribute.String("cart.id", c.Param("id"))))
	defer span.End()

	session, err := h.svc.UpdateSelection(ctx, c.Param("id"), update)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.FromCartSession(session)).Build()
}

func (h *Handler) addItem(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "cart.addItem", trace.WithAttributes(attribute.String("cart.id", c.Param("id"))))
	defer span.End()

	session, err := h.svc.AddItem(ctx, c.Param("id"))
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.FromCartSession(session)).Build()
}

func (h *Handler) removeItem(c echo.Context) error {
	b := response.New(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid item index", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "cart.removeItem", trace.WithAttributes(
		attribute.String("cart.id", c.Param("id")),
		attribute.Int("cart.index", index),
	))
	defer span.End()

	session, err := h.svc.RemoveItem(ctx, c.Param("id"), index)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.FromCartSession(session)).Build()
}

func (h *Handler) submit(c echo.Context) error {
	b := response.New(c)

	var req service.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "cart.submit", trace.WithAttributes(attribute.String("cart.id", c.Param("id"))))
	defer span.End()

	order, err := h.svc.Submit(ctx, c.Param("id"), req)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.FromOrder(order)).Build()
}

func (h *Handler) close(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "cart.close", trace.WithAttributes(attribute.String("cart.id", c.Param("id"))))
	defer span.End()

	if err := h.svc.Close(ctx, c.Param("id")); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusNoContent).Build()
}
