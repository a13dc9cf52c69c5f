package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/wellnessflow/api/internal/middleware"
	"github.com/wellnessflow/api/internal/model"
	"github.com/wellnessflow/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Problem details returned by the service layer pass through unchanged.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var problem *model.ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Lockout → 429 =====
	case errors.Is(err, service.ErrTooManyLoginAttempts):
		return model.NewLoginLockedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrSessionNotFound):
		return model.NewNotFoundError("session")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// writeServiceError maps err and writes it. notFoundStatus overrides the
// status of not-found outcomes for routes that report them differently.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundStatus int) {
	problem := MapServiceError(err)
	if problem.Status == http.StatusNotFound && notFoundStatus != 0 {
		problem = problem.WithStatus(notFoundStatus)
	}
	if problem.Status == http.StatusInternalServerError {
		slog.Error("unhandled service error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.Any("error", err),
		)
	}
	WriteError(w, r, problem)
}
