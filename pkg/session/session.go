package session

import (
	"encoding/json"
	"errors"
	"time"
)

// Session is a completed social login.
type Session struct {
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	ID        string          `json:"id"`
	Provider  string          `json:"provider"`
	Subject   string          `json:"subject"` // provider's unique user id
	User      json.RawMessage `json:"user"`    // serialized result of the auth callback
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Decode unmarshals the stored user into dst.
func (s *Session) Decode(dst any) error {
	if s == nil || len(s.User) == 0 {
		return ErrNotFound
	}
	return json.Unmarshal(s.User, dst)
}

// User returns the stored user as T.
//
//	u, err := session.User[profile.Profile](sess)
func User[T any](s *Session) (T, error) {
	var v T
	if err := s.Decode(&v); err != nil {
		if errors.Is(err, ErrNotFound) {
			return v, err
		}
		return v, errors.Join(errors.New("session: decode user"), err)
	}
	return v, nil
}
