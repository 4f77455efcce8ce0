package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryApprovalGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire fails while held", func(t *testing.T) {
		g := NewInMemoryApprovalGuard(time.Minute)
		id := uuid.New()

		acquired, err := g.Acquire(ctx, id)
		require.NoError(t, err)
		assert.True(t, acquired)

		acquired, err = g.Acquire(ctx, id)
		require.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("release frees the guard", func(t *testing.T) {
		g := NewInMemoryApprovalGuard(time.Minute)
		id := uuid.New()

		acquired, err := g.Acquire(ctx, id)
		require.NoError(t, err)
		require.True(t, acquired)

		g.Release(ctx, id)

		acquired, err = g.Acquire(ctx, id)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("guards are per stocktake", func(t *testing.T) {
		g := NewInMemoryApprovalGuard(time.Minute)

		acquired, err := g.Acquire(ctx, uuid.New())
		require.NoError(t, err)
		require.True(t, acquired)

		acquired, err = g.Acquire(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("expired holds can be reacquired", func(t *testing.T) {
		g := NewInMemoryApprovalGuard(time.Millisecond)
		id := uuid.New()

		acquired, err := g.Acquire(ctx, id)
		require.NoError(t, err)
		require.True(t, acquired)

		time.Sleep(5 * time.Millisecond)

		acquired, err = g.Acquire(ctx, id)
		require.NoError(t, err)
		assert.True(t, acquired)
	})
}
