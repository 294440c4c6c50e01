package main

import (
	"os"

	"github.com/club-invaders/fanclub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
