package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/events"
	"cv-backend/internal/jobs"
	"cv-backend/internal/services/health"
	"cv-backend/internal/shared/config"
	"cv-backend/internal/shared/server"
	"cv-backend/internal/shared/storage/db"
	"cv-backend/internal/shared/storage/object"
	localstore "cv-backend/internal/shared/storage/object/local"
	s3store "cv-backend/internal/shared/storage/object/s3"
	"cv-backend/internal/shared/telemetry"
)

const memoryBackend = "memory"

// App holds shared dependencies.
type App struct {
	Config      config.Config
	Router      *gin.Engine
	DB          *sql.DB
	Dialect     db.Dialect
	Store       object.Store
	Events      events.Publisher
	JobsRepo    jobs.Repo
	JobsService *jobs.Service
	JobsHandler *jobs.Handler
	Health      *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	dialect, err := db.ParseDialect(cfg.DBDriver)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg, dialect)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	publisher, err := buildPublisher(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Dialect: dialect,
		Store:   store,
		Events:  publisher,
	}

	backend := memoryBackend
	if sqlDB != nil {
		app.JobsRepo = &jobs.SQLRepo{DB: sqlDB, Dialect: dialect}
		backend = string(dialect)
	} else {
		app.JobsRepo = jobs.NewMemoryRepo()
	}
	app.JobsService = jobs.NewService(app.JobsRepo, publisher)
	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.Health = health.NewService(sqlDB, backend)

	if app.JobsHandler == nil {
		return nil, errors.New("failed to initialize handlers")
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:      cfg,
		JobsHandler: app.JobsHandler,
		Health:      app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":     cfg.Env,
		"store":   backend,
		"events":  cfg.EventsBackend,
		"objects": cfg.ObjectStoreType,
	})
	return app, nil
}

// Close releases the database handle and the event publisher.
func (a *App) Close() error {
	var errs []error
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close events: %w", err))
		}
	}
	if a.DB != nil && !db.IsLambdaRuntime() {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}

// DSN returns the connection string for cfg, preferring DATABASE_URL.
func DSN(cfg config.Config, dialect db.Dialect) (string, error) {
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		return dsn, nil
	}
	return db.BuildDSN(dialect, db.DSNParts{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
	})
}

func buildDB(ctx context.Context, cfg config.Config, dialect db.Dialect) (*sql.DB, error) {
	if !cfg.HasDatabase() {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.no_database", map[string]any{"fallback": memoryBackend})
			return nil, nil
		}
		return nil, fmt.Errorf("database settings are required: set DATABASE_URL or DB_HOST and DB_NAME")
	}

	dsn, err := DSN(cfg, dialect)
	if err != nil {
		return nil, err
	}

	var sqlDB *sql.DB
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, dialect, dsn, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, dialect, dsn, db.OptionsFromEnv(db.DefaultServerOptions()))
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.database_unavailable", map[string]any{
				"fallback": memoryBackend,
				"error":    err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}

	if cfg.DBAutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
			closeDB(sqlDB)
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildPublisher(ctx context.Context, cfg config.Config) (events.Publisher, error) {
	switch cfg.EventsBackend {
	case "sqs":
		return events.NewSQSPublisher(ctx, cfg.EventsSQSQueueURL, cfg.AWSRegion)
	case "nats":
		return events.NewNATSPublisher(cfg.EventsNATSURL, cfg.EventsNATSSubject)
	default:
		return events.NopPublisher{}, nil
	}
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil && !db.IsLambdaRuntime() {
		sqlDB.Close()
	}
}
