package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), -time.Second))

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// The expired entry is evicted on read, not just skipped
	assert.Empty(t, c.data)
}

func TestMemoryCache_ClearSweepsExpiredEntries(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "clinic:a:appointments", []byte("stale"), -time.Second))
	require.NoError(t, c.Set(ctx, "clinic:b:appointments", []byte("live"), time.Minute))

	// Clearing one clinic's keys also sweeps expired entries of others
	require.NoError(t, c.Clear(ctx, "clinic:c:appointments*"))

	assert.Len(t, c.data, 1)
	got, err := c.Get(ctx, "clinic:b:appointments")
	require.NoError(t, err)
	assert.Equal(t, []byte("live"), got)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_ClearPattern(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, AppointmentListKey("clinic-a", ""), []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, AppointmentListKey("clinic-a", "2026-09-15"), []byte("b"), time.Minute))
	require.NoError(t, c.Set(ctx, AppointmentListKey("clinic-b", ""), []byte("c"), time.Minute))

	require.NoError(t, c.Clear(ctx, AppointmentListPattern("clinic-a")))

	_, err := c.Get(ctx, AppointmentListKey("clinic-a", ""))
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, AppointmentListKey("clinic-a", "2026-09-15"))
	assert.ErrorIs(t, err, ErrCacheMiss)

	// The other clinic's view survives
	got, err := c.Get(ctx, AppointmentListKey("clinic-b", ""))
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), got)
}

func TestAppointmentListKey(t *testing.T) {
	assert.Equal(t, "clinic:c1:appointments", AppointmentListKey("c1", ""))
	assert.Equal(t, "clinic:c1:appointments:2026-09-15", AppointmentListKey("c1", "2026-09-15"))
	assert.Equal(t, "clinic:c1:appointments*", AppointmentListPattern("c1"))
}
