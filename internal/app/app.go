package app

import (
	"go.uber.org/fx"

	"github.com/billmate/billmate/internal/blob"
	"github.com/billmate/billmate/internal/cache"
	"github.com/billmate/billmate/internal/config"
	"github.com/billmate/billmate/internal/database"
	"github.com/billmate/billmate/internal/logger"
	"github.com/billmate/billmate/internal/messaging"
	"github.com/billmate/billmate/internal/observability"
	repositorypurchase "github.com/billmate/billmate/internal/repository/purchaseorder"
	httpserver "github.com/billmate/billmate/internal/server/http"
	servicepurchase "github.com/billmate/billmate/internal/service/purchaseorder"
	transporthttp "github.com/billmate/billmate/internal/transport/http"
	"github.com/billmate/billmate/internal/worker"
	workerpurchase "github.com/billmate/billmate/internal/worker/purchaseorder"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	blob.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositorypurchase.Module,
	servicepurchase.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerpurchase.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
