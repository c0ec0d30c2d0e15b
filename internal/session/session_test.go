package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip сохраняет сессию и возвращает запрос с выданной cookie
func roundTrip(t *testing.T, store Store, s *Session) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, httptest.NewRequest(http.MethodGet, "/", nil), s))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/calendar", nil)
	req.AddCookie(cookies[0])
	return req
}

func testStores(t *testing.T) map[string]Store {
	stores := map[string]Store{
		"memory": NewMemoryStore(time.Hour, CookieOptions{}),
		"cookie": NewCookieStore("test-secret", time.Hour, CookieOptions{}),
	}
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		t.Cleanup(func() { _ = client.Close() })
		stores["redis"] = NewRedisStore(client, time.Hour, CookieOptions{})
	}
	return stores
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			req := roundTrip(t, store, &Session{Authenticated: true})

			s, err := store.Get(req)
			require.NoError(t, err)
			assert.True(t, s.Authenticated)
			assert.NotEmpty(t, s.ID)
		})
	}
}

func TestStoreWithoutCookie(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			s, err := store.Get(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			require.NotNil(t, s)
			assert.False(t, s.Authenticated)
		})
	}
}

func TestStoreClear(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			req := roundTrip(t, store, &Session{Authenticated: true})

			rec := httptest.NewRecorder()
			require.NoError(t, store.Clear(rec, req))

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, "", cookies[0].Value)
			assert.Less(t, cookies[0].MaxAge, 0)
		})
	}
}

func TestMemoryStoreClearForgetsSession(t *testing.T) {
	store := NewMemoryStore(time.Hour, CookieOptions{})
	req := roundTrip(t, store, &Session{Authenticated: true})

	require.NoError(t, store.Clear(httptest.NewRecorder(), req))

	// старая cookie больше не действует
	s, err := store.Get(req)
	require.NoError(t, err)
	assert.False(t, s.Authenticated)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Hour, CookieOptions{})
	store.now = func() time.Time { return now }

	req := roundTrip(t, store, &Session{Authenticated: true})
	roundTrip(t, store, &Session{Authenticated: true})
	assert.Equal(t, 2, store.Len())

	now = now.Add(2 * time.Hour)

	s, err := store.Get(req)
	require.NoError(t, err)
	assert.False(t, s.Authenticated)

	assert.Equal(t, 2, store.Purge())
	assert.Equal(t, 0, store.Len())
}

func TestCookieStoreRejectsForgery(t *testing.T) {
	store := NewCookieStore("test-secret", time.Hour, CookieOptions{})
	other := NewCookieStore("other-secret", time.Hour, CookieOptions{})

	req := roundTrip(t, other, &Session{Authenticated: true})
	s, err := store.Get(req)
	require.NoError(t, err)
	assert.False(t, s.Authenticated)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not.a.jwt"})
	s, err = store.Get(req)
	require.NoError(t, err)
	assert.False(t, s.Authenticated)
}

func TestCookieStoreExpiry(t *testing.T) {
	now := time.Now()
	store := NewCookieStore("test-secret", time.Minute, CookieOptions{})
	store.now = func() time.Time { return now }

	req := roundTrip(t, store, &Session{Authenticated: true})

	now = now.Add(time.Hour)
	s, err := store.Get(req)
	require.NoError(t, err)
	assert.False(t, s.Authenticated)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, FromContext(ctx).Authenticated)
	assert.ErrorIs(t, RequireAuthenticated(ctx), ErrUnauthenticated)

	ctx = NewContext(ctx, &Session{Authenticated: true})
	assert.True(t, FromContext(ctx).Authenticated)
	assert.NoError(t, RequireAuthenticated(ctx))
}
