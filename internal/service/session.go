package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wellnessflow/api/internal/database"
	"github.com/wellnessflow/api/internal/metrics"
	"github.com/wellnessflow/api/internal/model"
)

// SessionRepository defines the interface for session storage.
// GetByID returns nil, nil when no row exists; Update and Delete return
// database.ErrNotFound when the row is gone.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	ListPublished(ctx context.Context) ([]*model.Session, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id int64) error
}

// SessionService handles session authoring and publication
type SessionService struct {
	sessionRepo SessionRepository
	userRepo    UserRepository
}

// SessionServiceConfig holds configuration for the session service
type SessionServiceConfig struct {
	SessionRepo SessionRepository
	UserRepo    UserRepository
}

// NewSessionService creates a new session service
func NewSessionService(cfg SessionServiceConfig) *SessionService {
	return &SessionService{
		sessionRepo: cfg.SessionRepo,
		userRepo:    cfg.UserRepo,
	}
}

// GetPublicSessions returns every published session
func (s *SessionService) GetPublicSessions(ctx context.Context) ([]*model.Session, error) {
	sessions, err := s.sessionRepo.ListPublished(ctx)
	observe("list_public", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list published sessions: %w", err)
	}
	return nonNil(sessions), nil
}

// GetMySessions returns every session owned by userID regardless of status
func (s *SessionService) GetMySessions(ctx context.Context, userID int64) ([]*model.Session, error) {
	sessions, err := s.sessionRepo.ListByOwner(ctx, userID)
	observe("list_mine", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return nonNil(sessions), nil
}

// GetSession returns one session owned by userID
func (s *SessionService) GetSession(ctx context.Context, id, userID int64) (*model.Session, error) {
	session, err := s.loadOwned(ctx, id, userID)
	observe("get", err)
	return session, err
}

// SaveDraft creates a new draft when req carries no id, otherwise it
// overwrites the content of the caller's existing session.
func (s *SessionService) SaveDraft(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error) {
	var (
		session *model.Session
		err     error
	)
	if req.ID == nil {
		session, err = s.createDraft(ctx, req, userID)
	} else {
		session, err = s.updateOwned(ctx, req, userID)
	}
	observe("save_draft", err)
	return session, err
}

// PublishSession marks the caller's session as published. Publishing an
// already published session succeeds without other changes.
func (s *SessionService) PublishSession(ctx context.Context, id, userID int64) (*model.Session, error) {
	session, err := s.publish(ctx, id, userID)
	observe("publish", err)
	return session, err
}

// UpdateSession overwrites the content of the caller's session
func (s *SessionService) UpdateSession(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error) {
	session, err := s.updateOwned(ctx, req, userID)
	observe("update", err)
	return session, err
}

// DeleteSession permanently removes the caller's session
func (s *SessionService) DeleteSession(ctx context.Context, id, userID int64) error {
	err := s.delete(ctx, id, userID)
	observe("delete", err)
	return err
}

func (s *SessionService) createDraft(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	content := req.Content()
	session := &model.Session{
		Title:       content.Title,
		Tags:        content.Tags,
		JSONFileURL: content.JSONFileURL,
		Description: content.Description,
		Status:      model.SessionStatusDraft,
		Owner:       owner.Owner(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// updateOwned is the single content mutation shared by SaveDraft and
// UpdateSession. Status is left untouched.
func (s *SessionService) updateOwned(ctx context.Context, req *model.SaveSessionRequest, userID int64) (*model.Session, error) {
	if req.ID == nil {
		return nil, model.NewValidationError([]model.FieldError{{Field: "id", Message: "id is required"}})
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	session, err := s.loadOwned(ctx, *req.ID, userID)
	if err != nil {
		return nil, err
	}

	content := req.Content()
	session.Title = content.Title
	session.Tags = content.Tags
	session.JSONFileURL = content.JSONFileURL
	session.Description = content.Description

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) publish(ctx context.Context, id, userID int64) (*model.Session, error) {
	session, err := s.loadOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	session.Status = model.SessionStatusPublished
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) delete(ctx context.Context, id, userID int64) error {
	if _, err := s.loadOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// loadOwned looks a session up by id and then checks ownership. Both a
// missing and a foreign session surface as ErrSessionNotFound.
func (s *SessionService) loadOwned(ctx context.Context, id, userID int64) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if err := checkOwner(session, userID); err != nil {
		return nil, err
	}
	return session, nil
}

func checkOwner(session *model.Session, userID int64) error {
	if !session.OwnedBy(userID) {
		return ErrSessionNotOwned
	}
	return nil
}

func (s *SessionService) save(ctx context.Context, session *model.Session) error {
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func observe(operation string, err error) {
	var problem *model.ProblemDetails
	switch {
	case err == nil:
		metrics.IncSessionOperation(operation, metrics.OutcomeSuccess)
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrUserNotFound):
		metrics.IncSessionOperation(operation, metrics.OutcomeNotFound)
	case errors.As(err, &problem):
		metrics.IncSessionOperation(operation, metrics.OutcomeInvalid)
	default:
		metrics.IncSessionOperation(operation, metrics.OutcomeError)
	}
}

func nonNil(sessions []*model.Session) []*model.Session {
	if sessions == nil {
		return []*model.Session{}
	}
	return sessions
}
