// Command server runs the inventory tracking HTTP API.
//
// Configuration is read from CONFIG_PATH (YAML) or environment variables;
// DATABASE_DSN and AUTH_JWT_SECRET are required.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/stocktrack/inventory-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		slog.Error("application failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
