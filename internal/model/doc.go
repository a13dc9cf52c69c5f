// Package model defines domain entities and data structures for the WellnessFlow API.
//
// The model package contains the struct definitions shared by every layer:
// domain objects, request payloads and error definitions.
//
// # Domain Entities
//
//   - User: an account identified by a numeric id and a unique email
//   - Session: a wellness session owned by exactly one user, either DRAFT
//     or PUBLISHED
//
// # JSON Serialization
//
// Sessions serialize in the shape the web client consumes:
//
//	{"id":1,"title":"T","tags":"","jsonFileUrl":"","description":"",
//	 "status":"DRAFT","createdAt":"...","updatedAt":"...",
//	 "user":{"id":1,"email":"a@x.com"}}
//
// Password hashes carry json:"-" and never leave the server.
//
// # Validation
//
// Request types expose Validate() []FieldError. Services turn a non-empty
// result into a ProblemDetails with NewValidationError.
//
// # Error Responses
//
// Errors follow RFC 9457 Problem Details:
//
//	{
//	    "type": "https://api.wellnessflow.app/errors/not-found",
//	    "title": "Not Found",
//	    "status": 404,
//	    "detail": "session not found",
//	    "code": 3001
//	}
package model
