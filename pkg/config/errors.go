package config

import "errors"

var (
	// ErrNilPointer is returned when Load is given a nil destination.
	ErrNilPointer = errors.New("config: nil pointer")

	// ErrParsingConfig is returned when environment variables cannot be parsed.
	ErrParsingConfig = errors.New("config: failed to parse environment")

	// ErrInvalidConfig is returned when a loaded value fails validation.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrReadProviders is returned when the provider settings file cannot be read or decoded.
	ErrReadProviders = errors.New("config: failed to read provider settings")
)
