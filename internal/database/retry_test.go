package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noBackoff(t *testing.T) {
	t.Helper()
	prev := retryBackoff
	retryBackoff = func(int) time.Duration { return time.Millisecond }
	t.Cleanup(func() { retryBackoff = prev })
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	noBackoff(t)

	calls := 0
	err := Retry(context.Background(), 3, "migrate", func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	noBackoff(t)

	refused := errors.New("connection refused")
	calls := 0
	err := Retry(context.Background(), 2, "migrate", func() error {
		calls++
		return refused
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, refused))
	assert.Contains(t, err.Error(), "giving up after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestRetry_DefaultAttempts(t *testing.T) {
	noBackoff(t)

	calls := 0
	_ = Retry(context.Background(), 0, "connect", func() error {
		calls++
		return errors.New("down")
	})

	assert.Equal(t, defaultRetries, calls)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	prev := retryBackoff
	retryBackoff = func(int) time.Duration { return time.Hour }
	t.Cleanup(func() { retryBackoff = prev })

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 5, "connect", func() error {
		calls++
		cancel()
		return errors.New("down")
	})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, calls)
}
