// Package http aggregates the HTTP handler modules.
package http

import (
	"go.uber.org/fx"

	"github.com/club-invaders/fanclub/internal/transport/http/cart"
	"github.com/club-invaders/fanclub/internal/transport/http/hero"
	"github.com/club-invaders/fanclub/internal/transport/http/merch"
	"github.com/club-invaders/fanclub/internal/transport/http/order"
	"github.com/club-invaders/fanclub/internal/transport/http/settings"
)

// Module bundles every handler module exposed by the API.
var Module = fx.Options(
	order.Module,
	merch.Module,
	hero.Module,
	settings.Module,
	cart.Module,
)
