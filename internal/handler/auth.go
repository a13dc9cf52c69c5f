package handler

import (
	"context"
	"net/http"

	"github.com/wellnessflow/api/internal/middleware"
	"github.com/wellnessflow/api/internal/model"
	"github.com/wellnessflow/api/internal/service"
)

// AuthService is the subset of the auth service used over HTTP
type AuthService interface {
	Register(ctx context.Context, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	Me(ctx context.Context, userID int64) (*model.User, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, r, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, 0)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, r, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, 0)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		WriteError(w, r, model.NewUnauthorizedError("authentication required"))
		return
	}

	user, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, 0)
		return
	}

	WriteJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(timeFormat),
	})
}
