package purchaseorder

import "go.uber.org/fx"

// Module provides the purchase order service to Fx.
var Module = fx.Provide(NewService)
