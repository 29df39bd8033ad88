package redis

import "errors"

// Errors returned by Open and Healthcheck.
var (
	// ErrEmptyConnectionURL is returned by Open when no URL is configured.
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	// ErrFailedToParseURL covers a non-redis scheme and URLs go-redis rejects.
	ErrFailedToParseURL = errors.New("redis: failed to parse connection URL")
	// ErrConnectionFailed is returned once every ping attempt has failed.
	ErrConnectionFailed = errors.New("redis: failed to establish connection")
	// ErrHealthcheckFailed wraps a failed readiness ping.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
