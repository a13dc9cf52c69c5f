package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/wellnessflow/api/internal/model"
	"github.com/wellnessflow/api/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plain-text password of every fixture user
const DefaultPassword = "testpass123"

// Factory creates test entities through the repositories
type Factory struct {
	users    service.UserRepository
	sessions service.SessionRepository
}

// New creates a new fixture factory
func New(users service.UserRepository, sessions service.SessionRepository) *Factory {
	return &Factory{users: users, sessions: sessions}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email    string
	Password string
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	o := &UserOpts{
		Email:    fmt.Sprintf("user_%s@test.local", randomID()),
		Password: DefaultPassword,
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	user := &model.User{Email: o.Email, PasswordHash: string(hash)}
	if err := f.users.Create(ctx(t), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// WithEmail sets the user's email
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) { o.Email = email }
}

// ============================================================================
// Session Fixtures
// ============================================================================

// SessionOpts customizes session creation
type SessionOpts struct {
	Title       string
	Tags        string
	JSONFileURL string
	Description string
	Status      model.SessionStatus
}

// CreateSession creates a session owned by owner
func (f *Factory) CreateSession(t *testing.T, owner *model.User, opts ...func(*SessionOpts)) *model.Session {
	t.Helper()

	id := randomID()
	o := &SessionOpts{
		Title:       "Session " + id,
		Tags:        "calm,breath",
		JSONFileURL: "https://cdn.test.local/sessions/" + id + ".json",
		Description: "Fixture session",
		Status:      model.SessionStatusDraft,
	}
	for _, fn := range opts {
		fn(o)
	}

	session := &model.Session{
		Title:       o.Title,
		Tags:        o.Tags,
		JSONFileURL: o.JSONFileURL,
		Description: o.Description,
		Status:      o.Status,
		Owner:       owner.Owner(),
	}
	if err := f.sessions.Create(ctx(t), session); err != nil {
		t.Fatalf("fixtures: failed to create session: %v", err)
	}
	return session
}

// Published creates the session already published
func Published() func(*SessionOpts) {
	return func(o *SessionOpts) { o.Status = model.SessionStatusPublished }
}

// WithTitle sets the session title
func WithTitle(title string) func(*SessionOpts) {
	return func(o *SessionOpts) { o.Title = title }
}
