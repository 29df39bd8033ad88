// Package internal implements the login flows behind the socialauth package.
//
// Manager turns canonical provider settings into routes. For every provider
// it looks up the registry binding, adapts the settings into the strategy
// config, builds the strategy with a completion closure, and binds:
//
//	GET  URLs.Auth      start the handshake (Authenticator.Begin)
//	GET  URLs.Callback  finish it (Authenticator.Callback)
//	POST URLs.Callback  same, for providers that post the callback
//
// The completion closure normalizes the raw profile (unless raw profiles were
// requested) and calls the single AuthFunc. A successful callback stores the
// returned user in a session and redirects to URLs.Success. Every failure,
// panics included, redirects to URLs.Fail with a flashed message.
//
// Serve runs an http.Handler with graceful shutdown; LivenessHandler and
// ReadinessHandler back the health endpoints of the server command.
//
// Import "github.com/dmitrymomot/socialauth" instead of this package.
package internal
