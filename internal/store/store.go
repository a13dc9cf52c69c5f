// Package store opens the repositories of the configured database driver.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wellnessflow/api/internal/config"
	"github.com/wellnessflow/api/internal/database"
	"github.com/wellnessflow/api/internal/metrics"
	"github.com/wellnessflow/api/internal/repository"
	"github.com/wellnessflow/api/internal/repository/postgres"
	"github.com/wellnessflow/api/internal/service"
)

// Stores bundles the repositories of one driver with its lifecycle hooks
type Stores struct {
	Users    service.UserRepository
	Sessions service.SessionRepository
	Ping     func(ctx context.Context) error
	Close    func()
}

// Open connects to the configured store, retrying up to connect_retries
// times, and brings its schema up to date. Postgres runs pending migrations
// once connected; SurrealDB applies its idempotent schema.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	case config.DriverSurrealDB:
		return openSurreal(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	pool, err := database.ConnectPostgres(ctx, database.PostgresConfig{
		URL:            cfg.URL,
		MaxConns:       cfg.MaxConns,
		ConnectRetries: cfg.ConnectRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	slog.Info("connected to database", slog.String("driver", config.DriverPostgres))

	// Migrations share the connect retry budget
	var status database.MigrationStatus
	err = database.Retry(ctx, cfg.ConnectRetries, "migrate", func() error {
		var migrateErr error
		status, migrateErr = database.Migrate(cfg.URL)
		return migrateErr
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	metrics.SetSchemaVersion(status.Version, status.Dirty)
	slog.Info("database schema up to date", slog.Uint64("version", uint64(status.Version)), slog.Bool("dirty", status.Dirty))

	return &Stores{
		Users:    postgres.NewUserRepository(pool),
		Sessions: postgres.NewSessionRepository(pool),
		Ping:     pool.Ping,
		Close:    pool.Close,
	}, nil
}

func openSurreal(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	db := database.NewSurrealDB(database.Config{
		Host:           cfg.Host,
		Port:           cfg.Port,
		User:           cfg.User,
		Password:       cfg.Password,
		Namespace:      cfg.Namespace,
		Database:       cfg.Database,
		ConnectRetries: cfg.ConnectRetries,
	})
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to surrealdb: %w", err)
	}
	if err := database.ApplySurrealSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply surrealdb schema: %w", err)
	}

	slog.Info("connected to database",
		slog.String("driver", config.DriverSurrealDB),
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
	)

	return &Stores{
		Users:    repository.NewUserRepository(db),
		Sessions: repository.NewSessionRepository(db),
		Ping:     db.Ping,
		Close:    func() { _ = db.Close() },
	}, nil
}
