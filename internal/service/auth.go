package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wellnessflow/api/internal/database"
	"github.com/wellnessflow/api/internal/metrics"
	"github.com/wellnessflow/api/internal/model"
	"github.com/wellnessflow/api/pkg/jwt"
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthService handles registration and login
type AuthService struct {
	userRepo     UserRepository
	tokenService *TokenService
	limiter      LoginLimiter
	hasher       *passwordHasher
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo     UserRepository
	TokenService *TokenService
	LoginLimiter LoginLimiter // Optional; nil disables lockout
	BcryptCost   int          // Default: 12
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:     cfg.UserRepo,
		tokenService: cfg.TokenService,
		limiter:      cfg.LoginLimiter,
		hasher:       newPasswordHasher(cfg.BcryptCost),
	}
}

// AuthResult is returned by a successful register or login
type AuthResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
}

// Register creates a new account and signs the caller in
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		metrics.IncAuthAttempt("register", metrics.OutcomeInvalid)
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(password); err != nil {
		metrics.IncAuthAttempt("register", metrics.OutcomeInvalid)
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		metrics.IncAuthAttempt("register", metrics.OutcomeError)
		return nil, err
	}
	if existing != nil {
		metrics.IncAuthAttempt("register", metrics.OutcomeRejected)
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		metrics.IncAuthAttempt("register", metrics.OutcomeError)
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can win between the lookup and the insert
		if errors.Is(err, database.ErrDuplicate) {
			metrics.IncAuthAttempt("register", metrics.OutcomeRejected)
			return nil, ErrEmailAlreadyExists
		}
		metrics.IncAuthAttempt("register", metrics.OutcomeError)
		return nil, err
	}

	result, err := s.issue(user)
	if err != nil {
		metrics.IncAuthAttempt("register", metrics.OutcomeError)
		return nil, err
	}
	metrics.IncAuthAttempt("register", metrics.OutcomeSuccess)
	return result, nil
}

// Login verifies credentials and signs the caller in. Unknown emails and
// wrong passwords are reported identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	if s.isLocked(ctx, email) {
		metrics.IncAuthAttempt("login", metrics.OutcomeRejected)
		return nil, ErrTooManyLoginAttempts
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		metrics.IncAuthAttempt("login", metrics.OutcomeError)
		return nil, err
	}
	if user == nil {
		s.hasher.Burn(password)
		s.recordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			slog.Warn("failed to reset login failures", "error", err)
		}
	}

	result, err := s.issue(user)
	if err != nil {
		metrics.IncAuthAttempt("login", metrics.OutcomeError)
		return nil, err
	}
	metrics.IncAuthAttempt("login", metrics.OutcomeSuccess)
	return result, nil
}

// Me returns the account behind an authenticated request
func (s *AuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ValidateAccessToken validates an access token and returns the claims
func (s *AuthService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return s.tokenService.ValidateAccessToken(token)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokenService.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     token,
		ExpiresIn: int64(s.tokenService.ExpiresIn().Seconds()),
		UserID:    user.ID,
		Email:     user.Email,
	}, nil
}

// isLocked fails open when the lockout backend is unavailable
func (s *AuthService) isLocked(ctx context.Context, email string) bool {
	if s.limiter == nil {
		return false
	}
	locked, err := s.limiter.Locked(ctx, email)
	if err != nil {
		slog.Warn("login lockout check failed", "error", err)
		return false
	}
	return locked
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	metrics.IncAuthAttempt("login", metrics.OutcomeRejected)
	if s.limiter == nil {
		return
	}
	locked, err := s.limiter.RecordFailure(ctx, email)
	if err != nil {
		slog.Warn("failed to record login failure", "error", err)
		return
	}
	if locked {
		slog.Info("login locked after repeated failures", "email", email)
	}
}
