package order

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
	service "github.com/club-invaders/fanclub/internal/service/order"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/club-invaders/fanclub/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes on the Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
	g.POST("", h.create)
	g.PATCH("/:id/status", h.updateStatus)
	g.DELETE("/:id", h.remove)
}

type createItemPayload struct {
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage"`
	Price        string `json:"price"`
	Size         string `json:"size"`
	SizeCategory string `json:"sizeCategory"`
	SleeveType   string `json:"sleeveType"`
	JerseyName   string `json:"jerseyName"`
	JerseyNumber string `json:"jerseyNumber"`
	Quantity     int    `json:"quantity"`
}

type createPayload struct {
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
	TotalPrice      string              `json:"totalPrice"`
	TransferSlipURI string              `json:"transferSlipUri"`
	Items           []createItemPayload `json:"items"`
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list")
	defer span.End()

	orders, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.FromOrders(orders)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.FromOrder(order)).Build()
}

// create accepts a fully-formed order. No status field is bindable here;
// every new order starts out pending.
func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload createPayload
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if payload.CustomerName == "" || payload.CustomerPhone == "" {
		return b.WithError(errorbank.BadRequest("customerName and customerPhone are required")).Build()
	}
	if len(payload.Items) == 0 {
		return b.WithError(errorbank.BadRequest("at least one item is required")).Build()
	}

	order := &entity.Order{
		CustomerName:    payload.CustomerName,
		CustomerPhone:   payload.CustomerPhone,
		TotalPrice:      payload.TotalPrice,
		TransferSlipURI: payload.TransferSlipURI,
		Items:           make([]*entity.OrderItem, 0, len(payload.Items)),
	}
	for _, item := range payload.Items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		order.Items = append(order.Items, &entity.OrderItem{
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Price:        item.Price,
			Size:         item.Size,
			SizeCategory: item.SizeCategory,
			SleeveType:   item.SleeveType,
			JerseyName:   item.JerseyName,
			JerseyNumber: item.JerseyNumber,
			Quantity:     quantity,
		})
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create", trace.WithAttributes(
		attribute.Int("order.items", len(order.Items)),
	))
	defer span.End()

	if err := h.svc.Create(ctx, order); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(dto.FromOrder(order)).Build()
}

func (h *Handler) updateStatus(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.updateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", payload.Status),
	))
	defer span.End()

	if err := h.svc.UpdateStatus(ctx, id, entity.OrderStatus(payload.Status)); err != nil {
		return b.WithError(err).Build()
	}

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.FromOrder(order)).Build()
}

func (h *Handler) remove(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusNoContent).Build()
}
