package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Save and GetByID return a detached copy", func(t *testing.T) {
		// Given: a saved history
		sessionRepo := NewMemorySessionRepository(testSessionTTL)
		history := entity.NewGameHistory()
		history.PlayMove(0)
		require.NoError(t, sessionRepo.Save(ctx, "123", history))

		// When: the caller keeps playing on its own copy
		history.PlayMove(1)
		retrieved, err := sessionRepo.GetByID(ctx, "123")

		// Then: the stored session should not see the unsaved move
		require.NoError(t, err)
		assert.Equal(t, 1, retrieved.MoveCount())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(testSessionTTL)

		_, err := sessionRepo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Expired sessions are not found", func(t *testing.T) {
		// Given: a repository with a controllable clock
		sessionRepo := NewMemorySessionRepository(testSessionTTL)
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		sessionRepo.(*memSession).now = func() time.Time { return now }

		require.NoError(t, sessionRepo.Save(ctx, "123", entity.NewGameHistory()))

		// When: the ttl passes
		now = now.Add(testSessionTTL)

		// Then: the session should be gone
		_, err := sessionRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Saving refreshes the expiry", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(testSessionTTL)
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		sessionRepo.(*memSession).now = func() time.Time { return now }

		require.NoError(t, sessionRepo.Save(ctx, "123", entity.NewGameHistory()))
		now = now.Add(testSessionTTL / 2)
		require.NoError(t, sessionRepo.Save(ctx, "123", entity.NewGameHistory()))
		now = now.Add(testSessionTTL / 2)

		_, err := sessionRepo.GetByID(ctx, "123")
		require.NoError(t, err)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(testSessionTTL)
		require.NoError(t, sessionRepo.Save(ctx, "123", entity.NewGameHistory()))

		require.NoError(t, sessionRepo.DeleteByID(ctx, "123"))
		require.ErrorIs(t, sessionRepo.DeleteByID(ctx, "123"), apperror.ErrSessionNotFound)
	})
}
