package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/wellnessflow/api/internal/database"
	"github.com/wellnessflow/api/internal/model"
)

// UserRepository handles user data access on SurrealDB. Records carry a
// numeric uid drawn from the counter:user sequence.
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE ONLY user CONTENT {
			uid: (UPSERT ONLY counter:user SET value = (value ?? 0) + 1 RETURN VALUE value),
			email: $email,
			password_hash: $hash,
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	vars := map[string]interface{}{
		"email": user.Email,
		"hash":  user.PasswordHash,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := firstRecord(result)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	user.ID = getInt64(created, "uid")
	user.CreatedAt = parseTime(created["created_at"])
	user.UpdatedAt = parseTime(created["updated_at"])
	return nil
}

// GetByID retrieves a user by numeric id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT * FROM user WHERE uid = $id LIMIT 1`
	vars := map[string]interface{}{"id": id}

	return r.getOne(ctx, query, vars)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	return r.getOne(ctx, query, vars)
}

func (r *UserRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
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
	return parseUserRecord(data), nil
}

func parseUserRecord(data map[string]interface{}) *model.User {
	return &model.User{
		ID:           getInt64(data, "uid"),
		Email:        getString(data, "email"),
		PasswordHash: getString(data, "password_hash"),
		CreatedAt:    parseTime(data["created_at"]),
		UpdatedAt:    parseTime(data["updated_at"]),
	}
}
