package profile

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/socialauth/pkg/provider"
)

// NormalizeFunc reshapes a raw provider payload.
type NormalizeFunc func(raw map[string]any) (Profile, error)

// Normalizer dispatches raw payloads to per-provider rules.
// Providers without a rule get their payload back unchanged.
type Normalizer struct {
	rules map[provider.ID]NormalizeFunc
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithRule adds or replaces the rule of one provider.
func WithRule(id provider.ID, fn NormalizeFunc) Option {
	return func(n *Normalizer) {
		if fn != nil {
			n.rules[id] = fn
		}
	}
}

// New creates a normalizer with the built-in rules plus any options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{rules: builtinRules()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var defaultNormalizer = New()

// Normalize reshapes raw using the built-in rules.
func Normalize(id provider.ID, raw map[string]any) (Profile, error) {
	return defaultNormalizer.Normalize(id, raw)
}

// Normalize reshapes the raw payload of provider id.
// A payload that does not have the shape the rule expects yields ErrShapeMismatch.
func (n *Normalizer) Normalize(id provider.ID, raw map[string]any) (Profile, error) {
	fn, ok := n.rules[id]
	if !ok {
		return Profile(raw), nil
	}
	p, err := fn(raw)
	if err != nil {
		return nil, fmt.Errorf("%w (provider %q)", err, id)
	}
	return p, nil
}

func builtinRules() map[provider.ID]NormalizeFunc {
	return map[provider.ID]NormalizeFunc{
		provider.Foursquare: Unwrap("response", "user"),
		provider.Tumblr:     Unwrap("response", "user"),
		provider.Imgur:      Unwrap("data"),
		provider.Instagram:  Unwrap("data"),
		provider.Meetup:     FirstOf("results"),
		provider.Google:     Google,
	}
}

// Unwrap returns a rule that descends into the object found at path.
func Unwrap(path ...string) NormalizeFunc {
	return func(raw map[string]any) (Profile, error) {
		cur := raw
		for i, key := range path {
			next, ok := cur[key].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: expected object at %q", ErrShapeMismatch, strings.Join(path[:i+1], "."))
			}
			cur = next
		}
		return Profile(cur), nil
	}
}

// FirstOf returns a rule that takes the first object of the list at key.
func FirstOf(key string) NormalizeFunc {
	return func(raw map[string]any) (Profile, error) {
		list, ok := raw[key].([]any)
		if !ok || len(list) == 0 {
			return nil, fmt.Errorf("%w: expected non-empty list at %q", ErrShapeMismatch, key)
		}
		first, ok := list[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected object at %q", ErrShapeMismatch, key+"[0]")
		}
		return Profile(first), nil
	}
}

// Google maps OpenID Connect userinfo claims onto the normalized schema.
// Missing names fall back to "name", then "Guest" for the first name and
// "#" for the last name. Avatar is nil when there is no picture.
func Google(raw map[string]any) (Profile, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrShapeMismatch)
	}

	p := Profile{
		FieldID:        raw["sub"],
		FieldFirstName: firstNonEmpty(raw, "Guest", "given_name", "name"),
		FieldLastName:  firstNonEmpty(raw, "#", "family_name"),
		FieldAvatar:    nil,
		FieldEmail:     raw["email"],
	}
	if pic, ok := raw["picture"].(string); ok && pic != "" {
		p[FieldAvatar] = pic
	}
	if u, ok := raw["url"]; ok {
		p[FieldProfileURL] = u
	}
	return p, nil
}

func firstNonEmpty(raw map[string]any, fallback string, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
