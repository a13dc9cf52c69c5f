package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

//go:embed schema.surql
var surrealSchema string

const statusOK = "OK"

// SurrealDB is the document-store driver behind the SurrealDB repositories
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB returns an unconnected client; call Connect before use
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{config: cfg}
}

func (s *SurrealDB) endpoint() string {
	return fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)
}

// Connect dials the server, signs in and selects the namespace and
// database, retrying while the server is still starting.
func (s *SurrealDB) Connect(ctx context.Context) error {
	var db *surrealdb.DB
	err := Retry(ctx, s.config.ConnectRetries, "connect surrealdb", func() error {
		var dialErr error
		db, dialErr = s.dial(ctx)
		return dialErr
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConnection, s.endpoint(), err)
	}
	s.db = db
	return nil
}

func (s *SurrealDB) dial(ctx context.Context) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, s.endpoint())
	if err != nil {
		return nil, err
	}

	if _, err := db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	}); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("sign in as %q: %w", s.config.User, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("use %s/%s: %w", s.config.Namespace, s.config.Database, err)
	}
	return db, nil
}

// Close releases the connection. It is safe to call on an unconnected client.
func (s *SurrealDB) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close(context.Background())
}

// Ping asks the server for its version
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("%w: not connected", ErrConnection)
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: ping %s: %v", ErrConnection, s.endpoint(), err)
	}
	return nil
}

// Query implements Database
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.db == nil {
		return nil, fmt.Errorf("%w: not connected", ErrConnection)
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil {
		return nil, nil
	}
	return statementResults(*results)
}

// statementResults flattens per-statement results into the map form the
// repositories read. The first failed statement aborts with ErrQuery.
func statementResults(results []surrealdb.QueryResult[interface{}]) ([]interface{}, error) {
	out := make([]interface{}, 0, len(results))
	for i, r := range results {
		if r.Status != statusOK {
			msg := r.Status
			if r.Error != nil {
				msg = r.Error.Message
			}
			return nil, fmt.Errorf("%w: statement %d: %s", ErrQuery, i+1, msg)
		}
		out = append(out, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}
	return out, nil
}

// Execute implements Database
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

// ApplySurrealSchema defines the tables, indexes and id counter. Every
// statement is idempotent so it runs on each startup.
func ApplySurrealSchema(ctx context.Context, db Database) error {
	if err := db.Execute(ctx, surrealSchema, nil); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
