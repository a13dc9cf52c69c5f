// Package handler provides HTTP request handlers for the WellnessFlow API.
//
// Handlers depend on small service interfaces (AuthService, SessionService)
// so they can be exercised with plain doubles. NewRouter wires them onto a
// chi router together with the middleware stack.
//
// # Response Format
//
// Successful responses are bare JSON: a session object, an array of
// sessions (never null) or an auth result. Errors are RFC 9457 Problem
// Details written through WriteError.
//
// # Error Mapping
//
// MapServiceError converts service sentinels to problem details. Routes
// that historically reported a missing session as 400 (save-draft and
// publish) pass an override status to writeServiceError.
package handler
