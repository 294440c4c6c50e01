package app

import (
	"go.uber.org/fx"

	"github.com/club-invaders/fanclub/internal/cache"
	"github.com/club-invaders/fanclub/internal/config"
	"github.com/club-invaders/fanclub/internal/database"
	"github.com/club-invaders/fanclub/internal/logger"
	"github.com/club-invaders/fanclub/internal/messaging"
	"github.com/club-invaders/fanclub/internal/observability"
	repositoryhero "github.com/club-invaders/fanclub/internal/repository/hero"
	repositorymerch "github.com/club-invaders/fanclub/internal/repository/merch"
	repositoryorder "github.com/club-invaders/fanclub/internal/repository/order"
	repositorysettings "github.com/club-invaders/fanclub/internal/repository/settings"
	grpcserver "github.com/club-invaders/fanclub/internal/server/grpc"
	httpserver "github.com/club-invaders/fanclub/internal/server/http"
	servicecart "github.com/club-invaders/fanclub/internal/service/cart"
	servicehero "github.com/club-invaders/fanclub/internal/service/hero"
	servicemerch "github.com/club-invaders/fanclub/internal/service/merch"
	serviceorder "github.com/club-invaders/fanclub/internal/service/order"
	servicesettings "github.com/club-invaders/fanclub/internal/service/settings"
	transporthttp "github.com/club-invaders/fanclub/internal/transport/http"
	"github.com/club-invaders/fanclub/internal/worker"
	workerorder "github.com/club-invaders/fanclub/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryorder.Module,
	repositorymerch.Module,
	repositoryhero.Module,
	repositorysettings.Module,
	serviceorder.Module,
	servicemerch.Module,
	servicehero.Module,
	servicesettings.Module,
	servicecart.Module,
)

// HTTP wires the HTTP and gRPC transports on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
