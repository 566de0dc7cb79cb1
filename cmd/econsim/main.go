// Command econsim runs the macroeconomic policy simulator.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/talgya/macro-sim/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	if err := cli.NewRootCommand().Execute(); err != nil {
		slog.Error("econsim failed", "error", err)
		os.Exit(1)
	}
}
