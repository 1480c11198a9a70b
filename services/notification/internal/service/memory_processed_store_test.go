package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryProcessedEventsStore(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown event is not processed", func(t *testing.T) {
		store := NewMemoryProcessedEventsStore()

		processed, err := store.IsProcessed(ctx, "event-1")
		require.NoError(t, err)
		require.False(t, processed)
	})

	t.Run("marked event is processed", func(t *testing.T) {
		store := NewMemoryProcessedEventsStore()

		require.NoError(t, store.MarkProcessed(ctx, "event-1", time.Hour))

		processed, err := store.IsProcessed(ctx, "event-1")
		require.NoError(t, err)
		require.True(t, processed)
	})

	t.Run("expired event is forgotten", func(t *testing.T) {
		store := NewMemoryProcessedEventsStore()

		require.NoError(t, store.MarkProcessed(ctx, "event-1", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		processed, err := store.IsProcessed(ctx, "event-1")
		require.NoError(t, err)
		require.False(t, processed)
	})
}
