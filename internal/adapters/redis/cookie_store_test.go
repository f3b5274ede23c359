package redis

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/oasisnourish/storefront/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestCookieStore_SaveAndLoad(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewCookieStore(client, CookieStoreOptions{})
	ctx := context.Background()

	expires := time.Now().Add(time.Hour).Truncate(time.Second).UTC()
	err := store.Save(ctx, "api.example.com", []*http.Cookie{
		{Name: "access_token", Value: "a1", Path: "/", Expires: expires, HttpOnly: true, SameSite: http.SameSiteStrictMode},
		{Name: "refresh_token", Value: "r1", Path: "/auth/refresh", HttpOnly: true},
	})
	require.NoError(t, err)

	cookies, err := store.Load(ctx, "api.example.com")
	require.NoError(t, err)
	require.Len(t, cookies, 2)
	assert.Equal(t, "access_token", cookies[0].Name)
	assert.Equal(t, "a1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
	assert.True(t, expires.Equal(cookies[0].Expires))
	assert.Equal(t, "/auth/refresh", cookies[1].Path)

	ttl, err := client.TTL(ctx, defaultCookiePrefix+"api.example.com").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Hour, "session cookie keeps the key alive for SessionTTL")
}

func TestCookieStore_LoadMissing(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewCookieStore(client, CookieStoreOptions{})
	cookies, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, cookies)
}

func TestCookieStore_ExpiredCookiesDropped(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	now := time.Now()
	store := NewCookieStore(client, CookieStoreOptions{Prefix: "test:cookies:", Now: func() time.Time { return now }})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []*http.Cookie{
		{Name: "stale", Value: "x", Expires: now.Add(-time.Minute)},
		{Name: "fresh", Value: "y", Expires: now.Add(time.Minute)},
	}))

	cookies, err := store.Load(ctx, "k")
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "fresh", cookies[0].Name)

	require.NoError(t, store.Save(ctx, "k", []*http.Cookie{{Name: "stale", Value: "x", Expires: now.Add(-time.Second)}}))
	exists, err := client.Exists(ctx, "test:cookies:k").Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "saving only expired cookies clears the key")
}

func TestCookieStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewCookieStore(client, CookieStoreOptions{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []*http.Cookie{{Name: "a", Value: "b"}}))
	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, ""))

	cookies, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, cookies)
}

func TestCookieStore_SaveEmptyKey(t *testing.T) {
	store := NewCookieStore(nil, CookieStoreOptions{})
	require.Error(t, store.Save(context.Background(), "", nil))
}
