package adapter

import "errors"

var (
	// ErrMissingCredential is returned when clientID or clientSecret is empty.
	ErrMissingCredential = errors.New("adapter: missing credential")

	// ErrInvalidSettings is returned when the route paths of a provider are malformed.
	ErrInvalidSettings = errors.New("adapter: invalid settings")
)
