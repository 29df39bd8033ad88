package session

import "errors"

var (
	// ErrNotFound is returned when there is no session cookie or the
	// session it points to is gone.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned for a session past its ExpiresAt.
	ErrExpired = errors.New("session: expired")

	// ErrInvalidToken is returned when the session cookie fails verification.
	ErrInvalidToken = errors.New("session: invalid token")
)
