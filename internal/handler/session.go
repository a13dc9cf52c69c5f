package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wellnessflow/api/internal/middleware"
	"github.com/wellnessflow/api/internal/model"
)

const timeFormat = time.RFC3339

// SessionService is the subset of the session service used over HTTP
type SessionService interface {
	GetPublicSessions(ctx context.Context) ([]*model.Session, error)
	GetMySessions(ctx context.Context, userID int64) ([]*model.Session, error)
	GetSession(ctx context.Context, id, userID int64) (*model.Session, error)
	SaveDraft(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error)
	PublishSession(ctx context.Context, id, userID int64) (*model.Session, error)
	UpdateSession(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error)
	DeleteSession(ctx context.Context, id, userID int64) error
}

// SessionHandler handles public and owner-scoped session endpoints
type SessionHandler struct {
	sessionService SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// ListPublic handles GET /api/sessions
func (h *SessionHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.GetPublicSessions(r.Context())
	if err != nil {
		writeServiceError(w, r, err, 0)
		return
	}
	WriteJSON(w, http.StatusOK, sessions)
}

// ListMine handles GET /api/my-sessions
func (h *SessionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sessions, err := h.sessionService.GetMySessions(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, 0)
		return
	}
	WriteJSON(w, http.StatusOK, sessions)
}

// Get handles GET /api/my-sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, r, err, http.StatusNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, session)
}

// SaveDraft handles POST /api/my-sessions/save-draft
func (h *SessionHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.SaveSessionRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, r, model.NewBadRequestError("invalid request body"))
		return
	}

	session, err := h.sessionService.SaveDraft(r.Context(), &req, userID)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	WriteJSON(w, http.StatusOK, session)
}

// Publish handles POST /api/my-sessions/publish?sessionId=
func (h *SessionHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := parseID(r.URL.Query().Get("sessionId"))
	if err != nil {
		WriteError(w, r, model.NewValidationError([]model.FieldError{{Field: "sessionId", Message: "sessionId must be a positive integer"}}))
		return
	}

	session, err := h.sessionService.PublishSession(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	WriteJSON(w, http.StatusOK, session)
}

// Update handles PUT /api/my-sessions/{id}. The path id wins over any id
// in the body.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.SaveSessionRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, r, model.NewBadRequestError("invalid request body"))
		return
	}
	req.ID = &id

	session, err := h.sessionService.UpdateSession(r.Context(), &req, userID)
	if err != nil {
		writeServiceError(w, r, err, http.StatusNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, session)
}

// Delete handles DELETE /api/my-sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.sessionService.DeleteSession(r.Context(), id, userID); err != nil {
		writeServiceError(w, r, err, http.StatusNotFound)
		return
	}
	WriteNoContent(w)
}

func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		WriteError(w, r, model.NewUnauthorizedError("authentication required"))
	}
	return userID, ok
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, model.NewValidationError([]model.FieldError{{Field: "id", Message: "id must be a positive integer"}}))
		return 0, false
	}
	return id, true
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
