// Package repository implements the data access layer on SurrealDB.
//
// The PostgreSQL implementations live in the postgres subpackage; both
// satisfy the repository interfaces declared by the service package and
// are selected by the database.driver setting.
//
// # Repository Pattern
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - SurrealQL queries use $variable parameters
//   - Lookups return nil, nil when no record matches
//   - Update and Delete return database.ErrNotFound when the record is gone
//   - Unique index violations surface as database.ErrDuplicate
//
// # Numeric Ids
//
// Users and sessions expose integer ids. They are drawn from per-table
// counters (counter:user, counter:session) when the record is created and
// stored alongside the SurrealDB record id.
package repository
