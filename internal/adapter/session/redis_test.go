package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func TestRedisStore_CreateAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisStore(client, time.Hour, zaptest.NewLogger(t))

	sess, err := store.Create(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.ID)
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "user-1", sess.UserID)

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "user-1", got.UserID)
}

func TestRedisStore_GetMissing(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisStore(client, time.Hour, zaptest.NewLogger(t))

	got, err := store.Get(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_Expiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute, zaptest.NewLogger(t))

	sess, err := store.Create(context.Background(), "user-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_TouchExtendsTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute, zaptest.NewLogger(t))

	sess, err := store.Create(context.Background(), "user-1")
	require.NoError(t, err)

	// Renew half way through the TTL, then advance past the original expiry
	mr.FastForward(30 * time.Second)
	require.NoError(t, store.Touch(context.Background(), sess.ID))
	mr.FastForward(45 * time.Second)

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestRedisStore_Destroy(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisStore(client, time.Hour, zaptest.NewLogger(t))

	sess, err := store.Create(context.Background(), "user-1")
	require.NoError(t, err)

	require.NoError(t, store.Destroy(context.Background(), sess.ID))

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Destroy is idempotent
	require.NoError(t, store.Destroy(context.Background(), sess.ID))
}

func TestRedisStore_TouchMissingSession(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisStore(client, time.Hour, zaptest.NewLogger(t))

	assert.NoError(t, store.Touch(context.Background(), "does-not-exist"))
}
