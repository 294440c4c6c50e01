package merch

import "go.uber.org/fx"

// Module provides the merch repository to Fx.
var Module = fx.Provide(NewRepository)
