package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/talent-marketplace/internal/config"
	"github.com/magabrotheeeer/talent-marketplace/internal/models"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache, err := InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := testStruct{Name: "Alice", Age: 30}
	require.NoError(t, cache.Set(ctx, "user:1", expected, time.Minute))

	var actual testStruct
	found, err := cache.Get(ctx, "user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out testStruct
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "key"))

	var out string
	found, err := cache.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Db.Set(ctx, "bad", []byte("not-json"), time.Minute).Err())

	var out testStruct
	found, err := cache.Get(ctx, "bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestSetExpires(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "ttl", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	var out string
	found, err := cache.Get(ctx, "ttl", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInitServerInvalidAddr(t *testing.T) {
	cache, err := InitServer(context.Background(), config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	})
	assert.Nil(t, cache)
	assert.Error(t, err)
}

func TestPreferencesCache_RoundTrip(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()
	pc := NewPreferencesCache(c, time.Hour)

	_, found, err := pc.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	off := false
	last := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	prefs := models.NotificationPreferences{
		Enabled:  &off,
		Channels: models.ChannelPreferences{Email: &off},
		EventTypes: map[models.NotificationType]models.ChannelPreferences{
			models.NotificationMessage: {InApp: &off},
		},
		LastEmailSentAt: map[models.NotificationType]time.Time{models.NotificationMessage: last},
	}
	require.NoError(t, pc.SetPreferences(ctx, "u1", prefs))
	assert.True(t, mr.Exists("notification_prefs:u1"))

	got, found, err := pc.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, got.Enabled)
	assert.False(t, *got.Enabled)
	assert.True(t, last.Equal(got.LastEmailSentAt[models.NotificationMessage]))

	require.NoError(t, pc.InvalidatePreferences(ctx, "u1"))
	assert.False(t, mr.Exists("notification_prefs:u1"))
}
