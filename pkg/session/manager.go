package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/socialauth/pkg/cookie"
)

// CookieName is the cookie that carries the session ID.
const CookieName = "session_key"

// Manager ties sessions in a Store to a signed cookie.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	ttl     time.Duration
}

// NewManager creates a Manager. cookies must have a secret.
func NewManager(store Store, cookies *cookie.Manager, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, cookies: cookies, ttl: ttl}
}

// Login stores user under a fresh session ID and sets the cookie.
// A session already attached to the request is replaced.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, provider, subject string, user any) (*Session, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return nil, errors.Join(errors.New("session: encode user"), err)
	}

	if old, err := m.cookies.GetSigned(r, CookieName); err == nil {
		_ = m.store.Delete(r.Context(), old)
	}

	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Provider:  provider,
		Subject:   subject,
		User:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Create(r.Context(), sess); err != nil {
		return nil, err
	}
	if err := m.cookies.SetSigned(w, CookieName, sess.ID, int(m.ttl.Seconds())); err != nil {
		_ = m.store.Delete(r.Context(), sess.ID)
		return nil, err
	}
	return sess, nil
}

// Current returns the session attached to r.
func (m *Manager) Current(r *http.Request) (*Session, error) {
	id, err := m.cookies.GetSigned(r, CookieName)
	switch {
	case errors.Is(err, cookie.ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Join(ErrInvalidToken, err)
	}
	return m.store.Get(r.Context(), id)
}

// Logout deletes the session and clears the cookie. It succeeds when there
// is no session.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	defer m.cookies.Clear(w, CookieName)

	id, err := m.cookies.GetSigned(r, CookieName)
	if err != nil {
		return nil
	}
	return m.store.Delete(r.Context(), id)
}
