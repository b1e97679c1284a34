package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRepository(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheRepository()

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "greeting", []byte("hello"), time.Minute))

		value, err := cache.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), value)

		exists, err := cache.Exists(ctx, "greeting")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("MissingKey", func(t *testing.T) {
		_, err := cache.Get(ctx, "absent")
		assert.ErrorIs(t, err, ErrKeyNotFound)

		exists, err := cache.Exists(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Expiry", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "ephemeral", []byte("x"), 10*time.Millisecond))
		time.Sleep(30 * time.Millisecond)

		_, err := cache.Get(ctx, "ephemeral")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "doomed", []byte("x"), time.Minute))
		require.NoError(t, cache.Delete(ctx, "doomed"))

		_, err := cache.Get(ctx, "doomed")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "key", []byte("one"), time.Minute))
		require.NoError(t, cache.Set(ctx, "key", []byte("two"), time.Minute))

		value, err := cache.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), value)
	})
}
