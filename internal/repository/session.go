package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/wellnessflow/api/internal/database"
	"github.com/wellnessflow/api/internal/model"
)

// sessionProjection flattens the owner link into the row
const sessionProjection = `*, owner.uid AS owner_id, owner.email AS owner_email`

// SessionRepository handles session data access on SurrealDB. Records carry
// a numeric sid drawn from the counter:session sequence.
type SessionRepository struct {
	db database.Database
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session owned by session.Owner.ID
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		CREATE ONLY session CONTENT {
			sid: (UPSERT ONLY counter:session SET value = (value ?? 0) + 1 RETURN VALUE value),
			title: $title,
			tags: $tags,
			json_file_url: $json_file_url,
			description: $description,
			status: $status,
			owner: (SELECT VALUE id FROM ONLY user WHERE uid = $owner LIMIT 1),
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	vars := map[string]interface{}{
		"title":         session.Title,
		"tags":          session.Tags,
		"json_file_url": session.JSONFileURL,
		"description":   session.Description,
		"status":        string(session.Status),
		"owner":         session.Owner.ID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := firstRecord(result)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	session.ID = getInt64(created, "sid")
	session.CreatedAt = parseTime(created["created_at"])
	session.UpdatedAt = parseTime(created["updated_at"])
	return nil
}

// GetByID retrieves a session by numeric id
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionProjection + ` FROM session WHERE sid = $id LIMIT 1`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	data, err := firstRecord(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseSessionRecord(data)
}

// ListPublished returns published sessions in id order
func (r *SessionRepository) ListPublished(ctx context.Context) ([]*model.Session, error) {
	query := `SELECT ` + sessionProjection + ` FROM session WHERE status = $status ORDER BY sid ASC`
	vars := map[string]interface{}{"status": string(model.SessionStatusPublished)}

	return r.list(ctx, query, vars)
}

// ListByOwner returns every session of one owner in id order
func (r *SessionRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Session, error) {
	query := `SELECT ` + sessionProjection + ` FROM session WHERE owner.uid = $owner ORDER BY sid ASC`
	vars := map[string]interface{}{"owner": ownerID}

	return r.list(ctx, query, vars)
}

func (r *SessionRepository) list(ctx context.Context, query string, vars map[string]interface{}) ([]*model.Session, error) {
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := extractQueryResults(result)
	sessions := make([]*model.Session, 0, len(records))
	for _, rec := range records {
		data, ok := rec.(map[string]interface{})
		if !ok {
			continue
		}
		session, err := parseSessionRecord(data)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Update persists content and status and refreshes UpdatedAt
func (r *SessionRepository) Update(ctx context.Context, session *model.Session) error {
	query := `
		UPDATE session SET
			title = $title,
			tags = $tags,
			json_file_url = $json_file_url,
			description = $description,
			status = $status,
			updated_at = time::now()
		WHERE sid = $id
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":            session.ID,
		"title":         session.Title,
		"tags":          session.Tags,
		"json_file_url": session.JSONFileURL,
		"description":   session.Description,
		"status":        string(session.Status),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	updated, err := firstRecord(result)
	if err != nil {
		return err
	}
	session.UpdatedAt = parseTime(updated["updated_at"])
	return nil
}

// Delete removes a session permanently
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE session WHERE sid = $id RETURN BEFORE`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	_, err = firstRecord(result)
	return err
}

func parseSessionRecord(data map[string]interface{}) (*model.Session, error) {
	status := model.SessionStatus(getString(data, "status"))
	if !status.IsValid() {
		return nil, fmt.Errorf("session %d has unknown status %q", getInt64(data, "sid"), status)
	}
	return &model.Session{
		ID:          getInt64(data, "sid"),
		Title:       getString(data, "title"),
		Tags:        getString(data, "tags"),
		JSONFileURL: getString(data, "json_file_url"),
		Description: getString(data, "description"),
		Status:      status,
		CreatedAt:   parseTime(data["created_at"]),
		UpdatedAt:   parseTime(data["updated_at"]),
		Owner: model.SessionOwner{
			ID:    getInt64(data, "owner_id"),
			Email: getString(data, "owner_email"),
		},
	}, nil
}
