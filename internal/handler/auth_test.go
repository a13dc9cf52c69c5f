package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wellnessflow/api/internal/model"
	"github.com/wellnessflow/api/internal/service"
	"github.com/wellnessflow/api/internal/testing/helpers"
)

func TestRegister_Success_ReturnsAuthResult(t *testing.T) {
	t.Parallel()
	var gotEmail, gotPassword string
	api := newTestAPI(t, &mockAuthService{
		registerFunc: func(ctx context.Context, email, password string) (*service.AuthResult, error) {
			gotEmail, gotPassword = email, password
			return &service.AuthResult{Token: "tok", UserID: 1, Email: email}, nil
		},
	}, nil)

	resp := api.anon(t, http.MethodPost, "/api/auth/register").
		WithBody(CredentialsRequest{Email: "a@x.com", Password: "pw1"}).
		Do(api.router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	helpers.AssertJSONContains(t, resp, map[string]interface{}{
		"token":  "tok",
		"userId": 1,
		"email":  "a@x.com",
	})
	assert.Equal(t, "a@x.com", gotEmail)
	assert.Equal(t, "pw1", gotPassword)
}

func TestRegister_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   model.ErrorCode
	}{
		{"duplicate email", service.ErrEmailAlreadyExists, http.StatusConflict, model.ErrCodeAlreadyExists},
		{"invalid email", service.ErrInvalidEmail, http.StatusBadRequest, model.ErrCodeValidation},
		{"missing password", service.ErrPasswordRequired, http.StatusBadRequest, model.ErrCodeValidation},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, model.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := newTestAPI(t, &mockAuthService{
				registerFunc: func(ctx context.Context, email, password string) (*service.AuthResult, error) {
					return nil, tt.err
				},
			}, nil)

			resp := api.anon(t, http.MethodPost, "/api/auth/register").
				WithBody(CredentialsRequest{Email: "a@x.com", Password: "pw1"}).
				Do(api.router)

			helpers.AssertProblemDetails(t, resp, tt.status, tt.code)
		})
	}
}

func TestRegister_MalformedBody_Returns400(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, nil)

	resp := api.anon(t, http.MethodPost, "/api/auth/register").
		WithRawBody("{not json").
		Do(api.router)

	helpers.AssertProblemDetails(t, resp, http.StatusBadRequest, model.ErrCodeInvalidInput)
}

func TestLogin_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   model.ErrorCode
	}{
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, model.ErrCodeUnauthorized},
		{"locked out", service.ErrTooManyLoginAttempts, http.StatusTooManyRequests, model.ErrCodeLoginLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := newTestAPI(t, &mockAuthService{
				loginFunc: func(ctx context.Context, email, password string) (*service.AuthResult, error) {
					return nil, tt.err
				},
			}, nil)

			resp := api.anon(t, http.MethodPost, "/api/auth/login").
				WithBody(CredentialsRequest{Email: "a@x.com", Password: "nope"}).
				Do(api.router)

			helpers.AssertProblemDetails(t, resp, tt.status, tt.code)
		})
	}
}

func TestMe_RequiresAuth(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, nil)

	resp := api.anon(t, http.MethodGet, "/api/auth/me").Do(api.router)

	helpers.AssertProblemDetails(t, resp, http.StatusUnauthorized, model.ErrCodeUnauthorized)
}

func TestMe_ReturnsCaller(t *testing.T) {
	t.Parallel()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	api := newTestAPI(t, &mockAuthService{
		meFunc: func(ctx context.Context, userID int64) (*model.User, error) {
			return &model.User{ID: userID, Email: "a@x.com", CreatedAt: created}, nil
		},
	}, nil)

	resp := api.as(t, testUser, http.MethodGet, "/api/auth/me").Do(api.router)

	helpers.AssertStatus(t, resp, http.StatusOK)
	helpers.AssertJSONContains(t, resp, map[string]interface{}{
		"id":        1,
		"email":     "a@x.com",
		"createdAt": "2026-03-01T10:00:00Z",
	})
}

func TestMe_ExpiredToken_Returns401(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, nil, nil)

	resp := api.anon(t, http.MethodGet, "/api/auth/me").
		WithHeader("Authorization", "Bearer "+api.jwt.GenerateExpiredToken(testUser)).
		Do(api.router)

	helpers.AssertStatus(t, resp, http.StatusUnauthorized)
}
