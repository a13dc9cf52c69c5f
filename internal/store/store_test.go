package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessflow/api/internal/config"
	"github.com/wellnessflow/api/internal/database"
	"github.com/wellnessflow/api/internal/testing/testdb"
)

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestOpen_PostgresUnreachable(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), config.DatabaseConfig{
		Driver:         config.DriverPostgres,
		URL:            "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1",
		ConnectRetries: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to postgres", "connection is retried before any migration runs")
	assert.True(t, errors.Is(err, database.ErrConnection))
}

func TestOpen_SurrealUnreachable(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), config.DatabaseConfig{
		Driver:         config.DriverSurrealDB,
		Host:           "127.0.0.1",
		Port:           "1",
		ConnectRetries: 1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, database.ErrConnection))
}

func TestOpen_Postgres(t *testing.T) {
	db := testdb.NewPostgres(t)

	st, err := Open(testdb.Ctx(t), config.DatabaseConfig{
		Driver:         config.DriverPostgres,
		URL:            db.URL,
		ConnectRetries: 1,
	})
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Ping(testdb.Ctx(t)))
	sessions, err := st.Sessions.ListPublished(testdb.Ctx(t))
	require.NoError(t, err)
	assert.NotNil(t, sessions)
}
