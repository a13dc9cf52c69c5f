// Package testdb provides isolated databases for repository integration tests.
//
// Both backends are opt-in through the environment, and tests skip when
// the variable is unset:
//
//   - TEST_DATABASE_URL: PostgreSQL; each test gets its own schema with
//     the migrations applied.
//   - TEST_SURREALDB_HOST (plus _PORT, _USER, _PASSWORD): SurrealDB; each
//     test gets its own namespace with the schema applied.
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    pg := testdb.NewPostgres(t) // dropped automatically on cleanup
//	    repo := postgres.NewSessionRepository(pg.Pool)
//	}
package testdb
