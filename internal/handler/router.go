package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/wellnessflow/api/internal/middleware"
	"github.com/wellnessflow/api/internal/model"
)

// RouterDeps carries everything the HTTP surface needs
type RouterDeps struct {
	AuthService    AuthService
	SessionService SessionService
	TokenValidator middleware.TokenValidator
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting
	HealthChecks   map[string]HealthCheck
	MetricsHandler http.Handler // nil disables /metrics
	AllowedOrigins []string
}

// NewRouter builds the API router
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.AuthService)
	sessionHandler := NewSessionHandler(deps.SessionService)
	healthHandler := NewHealthHandler(deps.HealthChecks)
	requireAuth := middleware.Auth(deps.TokenValidator)

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimiddleware.Compress(5, "application/json", "application/problem+json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, model.NewNotFoundError("resource"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, model.NewMethodNotAllowedError(r.Method))
	})

	r.Get("/health", healthHandler.Check)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(middleware.RateLimit(deps.RateLimiter))
		}

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.With(requireAuth).Get("/auth/me", authHandler.Me)

		r.Get("/sessions", sessionHandler.ListPublic)

		r.Route("/my-sessions", func(r chi.Router) {
			r.Use(requireAuth)
			// Authenticated callers get their own bucket in addition to the per-IP one
			if deps.RateLimiter != nil {
				r.Use(middleware.RateLimit(deps.RateLimiter))
			}

			r.Get("/", sessionHandler.ListMine)
			r.Post("/save-draft", sessionHandler.SaveDraft)
			r.Post("/publish", sessionHandler.Publish)
			r.Get("/{id}", sessionHandler.Get)
			r.Put("/{id}", sessionHandler.Update)
			r.Delete("/{id}", sessionHandler.Delete)
		})
	})

	return r
}
