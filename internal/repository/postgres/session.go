package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/wellnessflow/api/internal/database"
	"github.com/wellnessflow/api/internal/model"
)

const sessionColumns = `
	s.id, s.title, s.tags, s.json_file_url, s.description, s.status,
	s.created_at, s.updated_at, u.id, u.email`

// SessionRepository handles session data access
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create creates a new session owned by session.Owner.ID
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	const query = `
		INSERT INTO sessions (user_id, title, tags, json_file_url, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		session.Owner.ID,
		session.Title,
		session.Tags,
		session.JSONFileURL,
		session.Description,
		string(session.Status),
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: owner %d", database.ErrNotFound, session.Owner.ID)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by id
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.id = $1`

	session, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	return session, nil
}

// ListPublished returns published sessions in id order
func (r *SessionRepository) ListPublished(ctx context.Context) ([]*model.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.status = $1
		ORDER BY s.id`

	return r.list(ctx, query, string(model.SessionStatusPublished))
}

// ListByOwner returns every session of one owner in id order
func (r *SessionRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Session, error) {
	query := `SELECT ` + sessionColumns + `
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1
		ORDER BY s.id`

	return r.list(ctx, query, ownerID)
}

func (r *SessionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Session, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*model.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// Update persists content and status and refreshes UpdatedAt
func (r *SessionRepository) Update(ctx context.Context, session *model.Session) error {
	const query = `
		UPDATE sessions SET
			title = $2,
			tags = $3,
			json_file_url = $4,
			description = $5,
			status = $6,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.Title,
		session.Tags,
		session.JSONFileURL,
		session.Description,
		string(session.Status),
	).Scan(&session.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.ErrNotFound
		}
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Delete removes a session permanently
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

func scanSession(row pgx.Row) (*model.Session, error) {
	var (
		session model.Session
		status  string
	)
	err := row.Scan(
		&session.ID,
		&session.Title,
		&session.Tags,
		&session.JSONFileURL,
		&session.Description,
		&status,
		&session.CreatedAt,
		&session.UpdatedAt,
		&session.Owner.ID,
		&session.Owner.Email,
	)
	if err != nil {
		return nil, err
	}
	session.Status = model.SessionStatus(status)
	if !session.Status.IsValid() {
		return nil, fmt.Errorf("session %d has unknown status %q", session.ID, status)
	}
	return &session, nil
}
