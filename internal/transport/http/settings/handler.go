package settings

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/club-invaders/fanclub/internal/entity"
	"github.com/club-invaders/fanclub/internal/presentation/http/response"
	service "github.com/club-invaders/fanclub/internal/service/settings"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/club-invaders/fanclub/transport/http/settings")

// Handler exposes the bank transfer info and size guide endpoints.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a settings Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes on the Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/settings")
	g.GET("/bank", h.getBank)
	g.PUT("/bank", h.putBank)
	g.GET("/size-guide", h.getSizeGuide)
	g.PUT("/size-guide", h.putSizeGuide)
}

func (h *Handler) getBank(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "settings.getBank")
	defer span.End()

	info, fallback := h.svc.BankInfo(ctx)
	if fallback {
		b.WithMeta("fallback", true)
	}
	return b.WithData(info).Build()
}

func (h *Handler) putBank(c echo.Context) error {
	b := response.New(c)

	var info entity.BankTransferInfo
	if err := c.Bind(&info); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "settings.putBank")
	defer span.End()

	if err := h.svc.UpdateBankInfo(ctx, info); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(info).Build()
}

func (h *Handler) getSizeGuide(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "settings.getSizeGuide")
	defer span.End()

	guide, fallback := h.svc.SizeGuide(ctx)
	if fallback {
		b.WithMeta("fallback", true)
	}
	return b.WithData(guide).Build()
}

func (h *Handler) putSizeGuide(c echo.Context) error {
	b := response.New(c)

	var guide entity.SizeGuide
	if err := c.Bind(&guide); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "settings.putSizeGuide")
	defer span.End()

	if err := h.svc.UpdateSizeGuide(ctx, guide); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(guide).Build()
}
