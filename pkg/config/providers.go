package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/socialauth/pkg/provider"
)

// LoadProviders reads provider settings from a YAML file.
func LoadProviders(path string) (map[provider.ID]provider.Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrReadProviders, err)
	}
	defer f.Close()
	return ParseProviders(f)
}

// ParseProviders decodes a YAML document keyed by provider ID.
//
//	google:
//	  credentials: {clientID: "...", clientSecret: "..."}
//	  urls: {auth: /auth/google, callback: /auth/google/callback, success: /, fail: /login}
//	  authParameters: {scope: "openid email profile"}
//
// Unknown fields are rejected. Every entry is validated, and the errors of all
// invalid entries are returned together. Whether a provider is supported is
// not checked here.
func ParseProviders(r io.Reader) (map[provider.ID]provider.Settings, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var out map[provider.ID]provider.Settings
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return map[provider.ID]provider.Settings{}, nil
		}
		return nil, errors.Join(ErrReadProviders, err)
	}
	if out == nil {
		out = map[provider.ID]provider.Settings{}
	}

	var errs []error
	for _, id := range slices.Sorted(maps.Keys(out)) {
		if err := validate.Struct(out[id]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return out, nil
}
