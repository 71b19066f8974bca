package http

import (
	"go.uber.org/fx"

	purchasetransport "github.com/billmate/billmate/internal/transport/http/purchaseorder"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	purchasetransport.Module,
)
