package service

import (
	"time"

	"github.com/wellnessflow/api/internal/model"
	"github.com/wellnessflow/api/pkg/jwt"
)

// TokenService issues and validates bearer tokens
type TokenService struct {
	jwtService *jwt.Service
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	JWTService *jwt.Service
}

// NewTokenService creates a new token service
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	return &TokenService{
		jwtService: cfg.JWTService,
	}
}

// Issue signs an access token identifying the user
func (s *TokenService) Issue(user *model.User) (string, error) {
	return s.jwtService.Sign(jwt.Claims{
		UserID: user.ID,
		Email:  user.Email,
	})
}

// ValidateAccessToken validates an access token and returns its claims
func (s *TokenService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return s.jwtService.Validate(token)
}

// ExpiresIn returns the lifetime of issued tokens
func (s *TokenService) ExpiresIn() time.Duration {
	return s.jwtService.GetExpiration()
}
