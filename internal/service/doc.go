// Package service implements the business logic layer for the WellnessFlow API.
//
// Services sit between HTTP handlers and repositories. Each one is built
// from a config struct (NewAuthService(AuthServiceConfig{...})) and
// declares the repository interfaces it needs, so both the PostgreSQL and
// SurrealDB repositories satisfy them.
//
// # Sessions
//
// SessionService scopes every mutation to the caller. A session owned by
// someone else is reported exactly like a missing one, ErrSessionNotFound,
// so callers cannot probe other users' ids.
//
// # Authentication
//
// AuthService hashes passwords with bcrypt, signs tokens through
// TokenService and optionally locks an email after repeated failures via a
// LoginLimiter. The Redis limiter fails open: if Redis is unreachable,
// logins proceed.
//
// # Error Handling
//
// Sentinel errors live in errors.go and are wrapped with fmt.Errorf on the
// way up; handlers match them with errors.Is. Input validation failures are
// returned as *model.ProblemDetails.
package service
