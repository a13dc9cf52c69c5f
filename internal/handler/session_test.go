package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellnessflow/api/internal/model"
	"github.com/wellnessflow/api/internal/service"
	"github.com/wellnessflow/api/internal/testing/helpers"
)

func TestListPublic_NoAuthNeeded_ReturnsArray(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, &mockSessionService{
		listPublicFunc: func(ctx context.Context) ([]*model.Session, error) {
			return []*model.Session{sampleSession(1, 2, model.SessionStatusPublished)}, nil
		},
	})

	resp := api.anon(t, http.MethodGet, "/api/sessions").Do(api.router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	var sessions []map[string]interface{}
	helpers.DecodeResponse(t, resp, &sessions)
	require.Len(t, sessions, 1)
	assert.Equal(t, "PUBLISHED", sessions[0]["status"])
	assert.Equal(t, map[string]interface{}{"id": float64(2), "email": "a@x.com"}, sessions[0]["user"])
}

func TestListPublic_Empty_IsArrayNotNull(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, nil)

	resp := api.anon(t, http.MethodGet, "/api/sessions").Do(api.router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.JSONEq(t, "[]", resp.Body.String())
}

func TestMySessions_RoutesRequireAuth(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/my-sessions"},
		{http.MethodGet, "/api/my-sessions/1"},
		{http.MethodPost, "/api/my-sessions/save-draft"},
		{http.MethodPost, "/api/my-sessions/publish?sessionId=1"},
		{http.MethodPut, "/api/my-sessions/1"},
		{http.MethodDelete, "/api/my-sessions/1"},
	}

	for _, rt := range routes {
		resp := api.anon(t, rt.method, rt.path).Do(api.router)
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", rt.method, rt.path, resp.Code)
		}
	}
}

func TestListMine_PassesCaller(t *testing.T) {
	t.Parallel()
	var gotUser int64
	api := newTestAPI(t, nil, &mockSessionService{
		listMineFunc: func(ctx context.Context, userID int64) ([]*model.Session, error) {
			gotUser = userID
			return []*model.Session{sampleSession(3, userID, model.SessionStatusDraft)}, nil
		},
	})

	resp := api.as(t, testUser, http.MethodGet, "/api/my-sessions").Do(api.router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, int64(1), gotUser)
}

func TestGet_NotFound_Returns404(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, &mockSessionService{
		getFunc: func(ctx context.Context, id, userID int64) (*model.Session, error) {
			return nil, service.ErrSessionNotOwned
		},
	})

	resp := api.as(t, testUser, http.MethodGet, "/api/my-sessions/9").Do(api.router)

	helpers.AssertProblemDetails(t, resp, http.StatusNotFound, model.ErrCodeNotFound)
}

func TestGet_InvalidID_Returns400(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, nil)

	for _, path := range []string{"/api/my-sessions/abc", "/api/my-sessions/0", "/api/my-sessions/-4"} {
		resp := api.as(t, testUser, http.MethodGet, path).Do(api.router)
		helpers.AssertValidationError(t, resp, "id")
	}
}

func TestSaveDraft_CreatesForCaller(t *testing.T) {
	t.Parallel()
	var got *model.SaveSessionRequest
	api := newTestAPI(t, nil, &mockSessionService{
		saveDraftFunc: func(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error) {
			got = req
			s := sampleSession(1, userID, model.SessionStatusDraft)
			s.Title = req.Title
			return s, nil
		},
	})

	resp := api.as(t, testUser, http.MethodPost, "/api/my-sessions/save-draft").
		WithBody(map[string]interface{}{"title": "T", "jsonFileUrl": "https://cdn/x.json", "status": "PUBLISHED"}).
		Do(api.router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	helpers.AssertJSONContains(t, resp, map[string]interface{}{"id": 1, "title": "T", "status": "DRAFT"})
	require.NotNil(t, got)
	assert.Nil(t, got.ID)
	assert.Equal(t, "https://cdn/x.json", got.JSONFileURL)
}

func TestSaveDraft_NotFound_Returns400(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, &mockSessionService{
		saveDraftFunc: func(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error) {
			return nil, service.ErrSessionNotFound
		},
	})

	resp := api.as(t, testUser, http.MethodPost, "/api/my-sessions/save-draft").
		WithBody(map[string]interface{}{"id": 99, "title": "T"}).
		Do(api.router)

	helpers.AssertProblemDetails(t, resp, http.StatusBadRequest, model.ErrCodeNotFound)
}

func TestSaveDraft_ValidationError_Returns400(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, &mockSessionService{
		saveDraftFunc: func(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error) {
			return nil, model.NewValidationError([]model.FieldError{{Field: "title", Message: "title is required"}})
		},
	})

	resp := api.as(t, testUser, http.MethodPost, "/api/my-sessions/save-draft").
		WithBody(map[string]interface{}{"title": ""}).
		Do(api.router)

	helpers.AssertValidationError(t, resp, "title")
}

func TestPublish_ParsesQueryParam(t *testing.T) {
	t.Parallel()
	var gotID int64
	api := newTestAPI(t, nil, &mockSessionService{
		publishFunc: func(ctx context.Context, id, userID int64) (*model.Session, error) {
			gotID = id
			return sampleSession(id, userID, model.SessionStatusPublished), nil
		},
	})

	resp := api.as(t, testUser, http.MethodPost, "/api/my-sessions/publish?sessionId=5").Do(api.router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	assert.Equal(t, int64(5), gotID)
	helpers.AssertJSONContains(t, resp, map[string]interface{}{"status": "PUBLISHED"})
}

func TestPublish_MissingOrBadSessionID_Returns400(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, nil)

	for _, path := range []string{"/api/my-sessions/publish", "/api/my-sessions/publish?sessionId=x"} {
		resp := api.as(t, testUser, http.MethodPost, path).Do(api.router)
		helpers.AssertValidationError(t, resp, "sessionId")
	}
}

func TestPublish_NotFound_Returns400(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, nil)

	resp := api.as(t, testUser, http.MethodPost, "/api/my-sessions/publish?sessionId=7").Do(api.router)

	helpers.AssertProblemDetails(t, resp, http.StatusBadRequest, model.ErrCodeNotFound)
}

func TestUpdate_PathIDWins(t *testing.T) {
	t.Parallel()
	var got *model.SaveSessionRequest
	api := newTestAPI(t, nil, &mockSessionService{
		updateFunc: func(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error) {
			got = req
			return sampleSession(*req.ID, userID, model.SessionStatusDraft), nil
		},
	})

	resp := api.as(t, testUser, http.MethodPut, "/api/my-sessions/4").
		WithBody(map[string]interface{}{"id": 8, "title": "New"}).
		Do(api.router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	require.NotNil(t, got)
	require.NotNil(t, got.ID)
	assert.Equal(t, int64(4), *got.ID)
	assert.Equal(t, "New", got.Title)
}

func TestUpdate_NotFound_Returns404(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, nil)

	resp := api.as(t, testUser, http.MethodPut, "/api/my-sessions/4").
		WithBody(map[string]interface{}{"title": "New"}).
		Do(api.router)

	helpers.AssertProblemDetails(t, resp, http.StatusNotFound, model.ErrCodeNotFound)
}

func TestDelete_Success_Returns204(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, &mockSessionService{
		deleteFunc: func(ctx context.Context, id, userID int64) error { return nil },
	})

	resp := api.as(t, testUser, http.MethodDelete, "/api/my-sessions/4").Do(api.router)

	helpers.AssertStatus(t, resp, http.StatusNoContent)
	assert.Empty(t, resp.Body.String())
}

func TestDelete_NotFound_Returns404(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, nil)

	resp := api.as(t, testUser, http.MethodDelete, "/api/my-sessions/4").Do(api.router)

	helpers.AssertProblemDetails(t, resp, http.StatusNotFound, model.ErrCodeNotFound)
}

func TestSessionRoutes_UnexpectedError_Returns500(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, &mockSessionService{
		listMineFunc: func(ctx context.Context, userID int64) ([]*model.Session, error) {
			return nil, errors.New("pool exhausted")
		},
	})

	resp := api.as(t, testUser, http.MethodGet, "/api/my-sessions").Do(api.router)

	helpers.AssertProblemDetails(t, resp, http.StatusInternalServerError, model.ErrCodeInternal)
	assert.NotContains(t, resp.Body.String(), "pool exhausted")
}
