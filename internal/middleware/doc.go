// Package middleware provides HTTP middleware for the WellnessFlow API.
//
// Every middleware has the signature func(http.Handler) http.Handler so it
// plugs straight into chi's Use and With.
//
// # Authentication
//
// Auth validates a bearer token and rejects the request with 401 before
// the handler runs. Downstream handlers read the caller from context:
//
//	userID, ok := middleware.GetUserID(r.Context())
//
// # Rate Limiting
//
// RateLimit keeps one golang.org/x/time/rate bucket per authenticated user
// or client IP and answers 429 with Retry-After once it is empty.
//
// # Observability
//
// RequestID, Logger and Metrics tag, log and count every request. Metrics
// labels requests by chi route pattern rather than raw path.
package middleware
