package testdb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/wellnessflow/api/internal/database"
)

var (
	// counterMu protects the namespace counter
	counterMu sync.Mutex
	counter   int64
)

// uniqueNamespace generates a unique namespace for test isolation
func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

// Ctx returns a context with a reasonable timeout for test operations.
func Ctx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// ============================================================================
// PostgreSQL
// ============================================================================

// Postgres is a migrated PostgreSQL schema private to one test
type Postgres struct {
	Pool   *pgxpool.Pool
	Schema string
	URL    string // Connection string pinned to Schema
	admin  *pgxpool.Pool
}

// NewPostgres creates an isolated schema, applies the migrations into it and
// returns a pool bound to it. The test is skipped unless TEST_DATABASE_URL
// is set.
func NewPostgres(t *testing.T) *Postgres {
	t.Helper()

	baseURL := os.Getenv("TEST_DATABASE_URL")
	if baseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := database.ConnectPostgres(ctx, database.PostgresConfig{URL: baseURL, ConnectRetries: 1})
	if err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	schema := uniqueNamespace()
	if _, err := admin.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", schema)); err != nil {
		admin.Close()
		t.Fatalf("testdb: failed to create schema: %v", err)
	}

	schemaURL, err := withSearchPath(baseURL, schema)
	if err != nil {
		admin.Close()
		t.Fatalf("testdb: %v", err)
	}

	if _, err := database.Migrate(schemaURL); err != nil {
		admin.Close()
		t.Fatalf("testdb: migration failed: %v", err)
	}

	pool, err := database.ConnectPostgres(ctx, database.PostgresConfig{URL: schemaURL, ConnectRetries: 1})
	if err != nil {
		admin.Close()
		t.Fatalf("testdb: failed to connect to schema: %v", err)
	}

	pg := &Postgres{Pool: pool, Schema: schema, URL: schemaURL, admin: admin}
	t.Cleanup(pg.Close)
	return pg
}

// Close drops the schema and releases both pools
func (p *Postgres) Close() {
	if p.Pool == nil {
		return
	}
	p.Pool.Close()
	p.Pool = nil

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = p.admin.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", p.Schema)) // Ignore errors on cleanup
	p.admin.Close()
}

func withSearchPath(rawURL, schema string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse TEST_DATABASE_URL: %w", err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ============================================================================
// SurrealDB
// ============================================================================

// Surreal is a SurrealDB namespace private to one test
type Surreal struct {
	DB        database.Database
	Namespace string
	Database  string
}

// getSurrealConfig returns database config from environment or defaults
func getSurrealConfig() database.Config {
	port := os.Getenv("TEST_SURREALDB_PORT")
	if port == "" {
		port = "8000"
	}

	user := os.Getenv("TEST_SURREALDB_USER")
	if user == "" {
		user = "root"
	}

	password := os.Getenv("TEST_SURREALDB_PASSWORD")
	if password == "" {
		password = "root"
	}

	return database.Config{
		Host:           os.Getenv("TEST_SURREALDB_HOST"),
		Port:           port,
		User:           user,
		Password:       password,
		ConnectRetries: 1,
	}
}

// NewSurreal connects to a fresh namespace and applies the schema. The test
// is skipped unless TEST_SURREALDB_HOST is set.
func NewSurreal(t *testing.T) *Surreal {
	t.Helper()

	cfg := getSurrealConfig()
	if cfg.Host == "" {
		t.Skip("TEST_SURREALDB_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	if err := database.ApplySurrealSchema(ctx, db); err != nil {
		db.Close()
		t.Fatalf("testdb: schema failed: %v", err)
	}

	s := &Surreal{DB: db, Namespace: cfg.Namespace, Database: cfg.Database}
	t.Cleanup(s.Close)
	return s
}

// Close removes the namespace and closes the connection
func (s *Surreal) Close() {
	if s.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = s.DB.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", s.Namespace), nil) // Ignore errors on cleanup
	s.DB.Close()
	s.DB = nil
}
