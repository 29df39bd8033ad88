package internal

import "errors"

var (
	// ErrUnknownStrategy is returned when a route refers to a strategy that was never registered.
	ErrUnknownStrategy = errors.New("socialauth: unknown strategy")

	// ErrNoUser is returned when the auth callback yields no user.
	ErrNoUser = errors.New("socialauth: no user")

	// ErrPanic is returned when a strategy or the auth callback panicked.
	ErrPanic = errors.New("socialauth: panic during authentication")

	// ErrSessionsDisabled is returned by session reads when sessions are off.
	ErrSessionsDisabled = errors.New("socialauth: sessions are disabled")
)

// ErrDuplicateProvider is returned when a provider is registered twice.
var ErrDuplicateProvider = errors.New("socialauth: provider already registered")
