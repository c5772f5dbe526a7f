package main

// Manage the cv schema:
//   go run ./cmd/migrate up
//   go run ./cmd/migrate reset

import (
	"os"

	"cv-backend/internal/shared/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
