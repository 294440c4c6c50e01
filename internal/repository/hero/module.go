package hero

import "go.uber.org/fx"

// Module provides the hero repository to Fx.
var Module = fx.Provide(NewRepository)
