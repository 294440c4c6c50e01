package main

import (
	"go.uber.org/fx"

	"github.com/club-invaders/fanclub/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
