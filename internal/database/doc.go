// Package database provides storage connectivity for the WellnessFlow API.
//
// Two backends are supported. PostgreSQL is the default: ConnectPostgres
// opens a pgx pool with retries and Migrate applies the embedded schema
// migrations. SurrealDB is the alternative document store, reached through
// the Database interface and bootstrapped with ApplySurrealSchema.
//
// # Error Types
//
// Repositories translate driver failures into the shared sentinels:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database
