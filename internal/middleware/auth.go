package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/wellnessflow/api/internal/model"
	"github.com/wellnessflow/api/pkg/jwt"
)

// TokenValidator defines the interface for token validation
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// Auth returns a middleware that requires a valid bearer token. Requests
// without one never reach the wrapped handler.
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, r, "missing authorization header")
				return
			}

			// Check Bearer prefix
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				writeUnauthorized(w, r, "invalid authorization header format")
				return
			}

			claims, err := validator.ValidateAccessToken(strings.TrimSpace(parts[1]))
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					writeUnauthorized(w, r, "token expired")
				case errors.Is(err, jwt.ErrInvalidSignature):
					writeUnauthorized(w, r, "invalid token signature")
				default:
					writeUnauthorized(w, r, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	problem := model.NewUnauthorizedError(detail)
	problem.Instance = r.URL.Path
	w.Header().Set("WWW-Authenticate", `Bearer realm="wellnessflow"`)
	problem.WriteJSON(w)
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
