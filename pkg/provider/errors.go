package provider

import "errors"

// ErrUnsupportedProvider is returned when a provider is absent from the registry.
var ErrUnsupportedProvider = errors.New("provider: unsupported provider")
