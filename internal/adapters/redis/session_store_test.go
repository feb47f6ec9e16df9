package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	"github.com/caseworks/user-portal/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func testSession(id string) domainauth.Session {
	now := time.Now()
	return domainauth.Session{
		ID:        id,
		Email:     "ada@example.com",
		CreatedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := testSession("test-session-1")
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.Email, retrieved.Email)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("test-session-delete")))

	_, err := store.Get(ctx, "test-session-delete")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err = store.Get(ctx, "test-session-delete")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_TTLExpiration(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := testSession("test-session-ttl")
	session.ExpiresAt = time.Now().Add(100 * time.Millisecond)
	require.NoError(t, store.Save(ctx, session))

	time.Sleep(200 * time.Millisecond)

	_, err := store.Get(ctx, "test-session-ttl")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithPrefix(client, "test-prefix:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("prefix-test")))

	exists := client.Exists(ctx, "test-prefix:prefix-test").Val()
	assert.Equal(t, int64(1), exists)

	retrieved, err := store.Get(ctx, "prefix-test")
	require.NoError(t, err)
	assert.Equal(t, "prefix-test", retrieved.ID)
}

func TestSessionStore_SaveEmptyID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	session := testSession("")
	err := store.Save(context.Background(), session)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")
}

func TestSessionStore_SaveExpiredSession(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	session := testSession("expired-session")
	session.ExpiresAt = time.Now().Add(-1 * time.Hour)
	err := store.Save(context.Background(), session)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session is expired")
}

func TestSessionStore_GetEmptyID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "")
	assert.Equal(t, ErrNotFound, err)
}
