package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Postgres error codes the repositories translate
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// PostgresConfig holds PostgreSQL connection settings
type PostgresConfig struct {
	URL            string
	MaxConns       int32 // Default: pgx default
	ConnectRetries int   // Default: 5
}

// ConnectPostgres opens a connection pool, retrying with a linear backoff
// while the server is still starting.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse url: %v", ErrConnection, err)
	}
	if cfg.MaxConns > 0 {
		config.MaxConns = cfg.MaxConns
	}

	var pool *pgxpool.Pool
	err = Retry(ctx, cfg.ConnectRetries, "connect postgres", func() error {
		var connErr error
		pool, connErr = pgxpool.ConnectConfig(ctx, config)
		return connErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return pool, nil
}

// IsUniqueViolation reports whether err is a unique constraint violation
func IsUniqueViolation(err error) bool {
	return pgErrorCode(err) == uniqueViolationCode
}

// IsForeignKeyViolation reports whether err references a missing row
func IsForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == foreignKeyViolationCode
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
