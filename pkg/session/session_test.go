package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/pkg/cache"
	"github.com/dmitrymomot/socialauth/pkg/cookie"
	"github.com/dmitrymomot/socialauth/pkg/session"
)

type user struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newManager(t *testing.T) (*session.Manager, *session.CacheStore) {
	t.Helper()
	c := cache.NewMemory[session.Session](cache.MemoryConfig{})
	t.Cleanup(func() { _ = c.Close() })
	store := session.NewCacheStore(c)
	cookies := cookie.MustNew(cookie.WithSecret("0123456789abcdef0123456789abcdef"))
	return session.NewManager(store, cookies, time.Hour), store
}

func withCookies(r *http.Request, w *httptest.ResponseRecorder) *http.Request {
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_LoginCurrentLogout(t *testing.T) {
	t.Parallel()

	m, store := newManager(t)

	w := httptest.NewRecorder()
	sess, err := m.Login(w, httptest.NewRequest(http.MethodGet, "/cb", nil), "github", "42", user{ID: "42", Name: "Octo"})
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	require.Equal(t, "github", sess.Provider)
	require.Equal(t, "42", sess.Subject)

	c := w.Result().Cookies()
	require.Len(t, c, 1)
	require.Equal(t, session.CookieName, c[0].Name)
	require.Equal(t, 3600, c[0].MaxAge)

	r := withCookies(httptest.NewRequest(http.MethodGet, "/", nil), w)
	cur, err := m.Current(r)
	require.NoError(t, err)
	require.Equal(t, sess.ID, cur.ID)

	u, err := session.User[user](cur)
	require.NoError(t, err)
	require.Equal(t, user{ID: "42", Name: "Octo"}, u)

	lw := httptest.NewRecorder()
	require.NoError(t, m.Logout(lw, r))
	cleared := lw.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Equal(t, session.CookieName, cleared[0].Name)
	require.Equal(t, -1, cleared[0].MaxAge)

	_, err = store.Get(context.Background(), sess.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
	_, err = m.Current(r)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestManager_LoginReplacesSession(t *testing.T) {
	t.Parallel()

	m, store := newManager(t)

	w := httptest.NewRecorder()
	first, err := m.Login(w, httptest.NewRequest(http.MethodGet, "/", nil), "google", "a", "x")
	require.NoError(t, err)

	w2 := httptest.NewRecorder()
	second, err := m.Login(w2, withCookies(httptest.NewRequest(http.MethodGet, "/", nil), w), "google", "a", "x")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	_, err = store.Get(context.Background(), first.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestManager_Current(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t)

	_, err := m.Current(httptest.NewRequest(http.MethodGet, "/", nil))
	require.ErrorIs(t, err, session.ErrNotFound)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged.value"})
	_, err = m.Current(r)
	require.ErrorIs(t, err, session.ErrInvalidToken)

	require.NoError(t, m.Logout(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestCacheStore(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[session.Session](cache.MemoryConfig{})
	defer c.Close()
	store := session.NewCacheStore(c)
	ctx := context.Background()

	err := store.Create(ctx, &session.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Second)})
	require.ErrorIs(t, err, session.ErrExpired)

	require.NoError(t, store.Create(ctx, &session.Session{ID: "s", ExpiresAt: time.Now().Add(time.Minute)}))
	got, err := store.Get(ctx, "s")
	require.NoError(t, err)
	require.Equal(t, "s", got.ID)

	// Expired entries still in the backend are rejected.
	require.NoError(t, c.Set(ctx, "stale", session.Session{ID: "stale", ExpiresAt: time.Now().Add(-time.Minute)}, time.Minute))
	_, err = store.Get(ctx, "stale")
	require.ErrorIs(t, err, session.ErrExpired)
}

func TestUser(t *testing.T) {
	t.Parallel()

	_, err := session.User[user](&session.Session{})
	require.ErrorIs(t, err, session.ErrNotFound)

	_, err = session.User[user](&session.Session{User: []byte(`"not an object"`)})
	require.Error(t, err)
}
