package hero

import "go.uber.org/fx"

// Module provides the hero service to Fx.
var Module = fx.Provide(NewService)
