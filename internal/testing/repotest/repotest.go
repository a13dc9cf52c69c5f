// Package repotest holds the behavior every repository backend must share.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellnessflow/api/internal/database"
	"github.com/wellnessflow/api/internal/model"
	"github.com/wellnessflow/api/internal/service"
	"github.com/wellnessflow/api/internal/testing/fixtures"
)

// Run exercises users and sessions against a live backend
func Run(t *testing.T, users service.UserRepository, sessions service.SessionRepository) {
	f := fixtures.New(users, sessions)

	t.Run("user ids are positive and emails unique", func(t *testing.T) {
		ctx := context.Background()
		user := f.CreateUser(t)
		assert.Positive(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())

		byEmail, err := users.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, user.ID, byEmail.ID)
		assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)

		byID, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, user.Email, byID.Email)

		err = users.Create(ctx, &model.User{Email: user.Email, PasswordHash: "x"})
		assert.True(t, errors.Is(err, database.ErrDuplicate), "got %v", err)
	})

	t.Run("missing user is nil", func(t *testing.T) {
		user, err := users.GetByEmail(context.Background(), "nobody@test.local")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("session round trip carries owner", func(t *testing.T) {
		ctx := context.Background()
		owner := f.CreateUser(t)
		created := f.CreateSession(t, owner, fixtures.WithTitle("Evening wind-down"))
		assert.Positive(t, created.ID)

		got, err := sessions.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Evening wind-down", got.Title)
		assert.Equal(t, model.SessionStatusDraft, got.Status)
		assert.Equal(t, owner.Owner(), got.Owner)
	})

	t.Run("ids increase", func(t *testing.T) {
		owner := f.CreateUser(t)
		first := f.CreateSession(t, owner)
		second := f.CreateSession(t, owner)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("listings filter and order", func(t *testing.T) {
		ctx := context.Background()
		owner := f.CreateUser(t)
		other := f.CreateUser(t)
		draft := f.CreateSession(t, owner)
		public := f.CreateSession(t, owner, fixtures.Published())
		foreign := f.CreateSession(t, other, fixtures.Published())

		mine, err := sessions.ListByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, draft.ID, mine[0].ID)
		assert.Equal(t, public.ID, mine[1].ID)

		published, err := sessions.ListPublished(ctx)
		require.NoError(t, err)
		ids := map[int64]bool{}
		for _, s := range published {
			assert.Equal(t, model.SessionStatusPublished, s.Status)
			ids[s.ID] = true
		}
		assert.True(t, ids[public.ID])
		assert.True(t, ids[foreign.ID])
		assert.False(t, ids[draft.ID])
	})

	t.Run("update refreshes updated at", func(t *testing.T) {
		ctx := context.Background()
		owner := f.CreateUser(t)
		session := f.CreateSession(t, owner)
		before := session.UpdatedAt

		time.Sleep(10 * time.Millisecond)
		session.Title = "Renamed"
		session.Status = model.SessionStatusPublished
		require.NoError(t, sessions.Update(ctx, session))
		assert.True(t, session.UpdatedAt.After(before))

		got, err := sessions.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, model.SessionStatusPublished, got.Status)
	})

	t.Run("delete is permanent", func(t *testing.T) {
		ctx := context.Background()
		owner := f.CreateUser(t)
		session := f.CreateSession(t, owner)

		require.NoError(t, sessions.Delete(ctx, session.ID))

		got, err := sessions.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.True(t, errors.Is(sessions.Delete(ctx, session.ID), database.ErrNotFound))
		assert.True(t, errors.Is(sessions.Update(ctx, session), database.ErrNotFound))
	})
}
