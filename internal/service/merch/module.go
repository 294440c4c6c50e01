package merch

import "go.uber.org/fx"

// Module provides the merch service to Fx.
var Module = fx.Provide(NewService)
