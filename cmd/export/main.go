package main

// Snapshot every job into object storage:
//   go run ./cmd/export

import (
	"context"
	"os"
	"time"

	"cv-backend/internal/bootstrap"
	"cv-backend/internal/jobs"
	"cv-backend/internal/shared/config"
	"cv-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Configure(cfg.LogLevel, cfg.LogFormat)

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	key, snap, err := jobs.Export(ctx, app.JobsRepo, app.Store, time.Now())
	if err != nil {
		telemetry.Error("export.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("export.done", map[string]any{
		"key":   key,
		"count": snap.Count,
		"store": cfg.ObjectStoreType,
	})
}
