package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/wellnessflow/api/internal/model"
	"github.com/wellnessflow/api/internal/service"
	"github.com/wellnessflow/api/internal/testing/helpers"
)

// ============================================================================
// Mock services
// ============================================================================

type mockAuthService struct {
	registerFunc func(ctx context.Context, email, password string) (*service.AuthResult, error)
	loginFunc    func(ctx context.Context, email, password string) (*service.AuthResult, error)
	meFunc       func(ctx context.Context, userID int64) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password string) (*service.AuthResult, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *mockAuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	if m.meFunc != nil {
		return m.meFunc(ctx, userID)
	}
	return nil, service.ErrUserNotFound
}

type mockSessionService struct {
	listPublicFunc func(ctx context.Context) ([]*model.Session, error)
	listMineFunc   func(ctx context.Context, userID int64) ([]*model.Session, error)
	getFunc        func(ctx context.Context, id, userID int64) (*model.Session, error)
	saveDraftFunc  func(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error)
	publishFunc    func(ctx context.Context, id, userID int64) (*model.Session, error)
	updateFunc     func(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error)
	deleteFunc     func(ctx context.Context, id, userID int64) error
}

func (m *mockSessionService) GetPublicSessions(ctx context.Context) ([]*model.Session, error) {
	if m.listPublicFunc != nil {
		return m.listPublicFunc(ctx)
	}
	return []*model.Session{}, nil
}

func (m *mockSessionService) GetMySessions(ctx context.Context, userID int64) ([]*model.Session, error) {
	if m.listMineFunc != nil {
		return m.listMineFunc(ctx, userID)
	}
	return []*model.Session{}, nil
}

func (m *mockSessionService) GetSession(ctx context.Context, id, userID int64) (*model.Session, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id, userID)
	}
	return nil, service.ErrSessionNotFound
}

func (m *mockSessionService) SaveDraft(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error) {
	if m.saveDraftFunc != nil {
		return m.saveDraftFunc(ctx, req, userID)
	}
	return nil, service.ErrSessionNotFound
}

func (m *mockSessionService) PublishSession(ctx context.Context, id, userID int64) (*model.Session, error) {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, id, userID)
	}
	return nil, service.ErrSessionNotFound
}

func (m *mockSessionService) UpdateSession(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req, userID)
	}
	return nil, service.ErrSessionNotFound
}

func (m *mockSessionService) DeleteSession(ctx context.Context, id, userID int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, userID)
	}
	return service.ErrSessionNotFound
}

// ============================================================================
// Test Helpers
// ============================================================================

var testUser = &model.User{ID: 1, Email: "a@x.com"}

type testAPI struct {
	router http.Handler
	jwt    *helpers.JWTHelper
}

// newTestAPI wires the real router, auth middleware and token validation
// around the given service doubles.
func newTestAPI(t *testing.T, auth AuthService, sessions SessionService) *testAPI {
	t.Helper()
	jwtHelper := helpers.NewJWTHelper(t)
	if auth == nil {
		auth = &mockAuthService{}
	}
	if sessions == nil {
		sessions = &mockSessionService{}
	}

	router := NewRouter(RouterDeps{
		AuthService:    auth,
		SessionService: sessions,
		TokenValidator: service.NewTokenService(service.TokenServiceConfig{JWTService: jwtHelper.Service}),
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	return &testAPI{router: router, jwt: jwtHelper}
}

func (a *testAPI) anon(t *testing.T, method, path string) *helpers.RequestBuilder {
	return helpers.NewRequest(t, method, path)
}

func (a *testAPI) as(t *testing.T, user *model.User, method, path string) *helpers.RequestBuilder {
	return helpers.NewRequest(t, method, path).WithAuth(a.jwt, user)
}

func sampleSession(id, ownerID int64, status model.SessionStatus) *model.Session {
	return &model.Session{
		ID:     id,
		Title:  "Morning breath",
		Status: status,
		Owner:  model.SessionOwner{ID: ownerID, Email: "a@x.com"},
	}
}
