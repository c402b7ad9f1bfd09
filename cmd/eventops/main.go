package main

import (
	"os"

	"github.com/nhle/event-ops/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
