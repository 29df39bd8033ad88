package oauth

import "errors"

var (
	// ErrInvalidConfig is returned by factories when the adapted configuration
	// lacks a field the strategy needs or cannot be decoded.
	ErrInvalidConfig = errors.New("oauth: invalid strategy configuration")

	// ErrStateMismatch is returned when the callback does not carry the state
	// (or OAuth1 request token) issued by the matching challenge.
	ErrStateMismatch = errors.New("oauth: state mismatch")

	// ErrMissingCode is returned when the callback has no authorization code or verifier.
	ErrMissingCode = errors.New("oauth: missing authorization code")

	// ErrAccessDenied is returned when the user declined at the provider.
	ErrAccessDenied = errors.New("oauth: access denied by user")

	ErrExchangeFailed = errors.New("oauth: token exchange failed")
	ErrFetchFailed    = errors.New("oauth: failed to fetch from provider")
	ErrRequestFailed  = errors.New("oauth: request returned non-OK status")
	ErrDecodeFailed   = errors.New("oauth: failed to decode response")
)
