package repository

import (
	"testing"

	"github.com/wellnessflow/api/internal/testing/repotest"
	"github.com/wellnessflow/api/internal/testing/testdb"
)

func TestRepositories_SurrealDB(t *testing.T) {
	s := testdb.NewSurreal(t)

	repotest.Run(t, NewUserRepository(s.DB), NewSessionRepository(s.DB))
}
