package provider

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrymomot/socialauth/pkg/oauth"
)

// ID names a supported identity provider (e.g. "google", "twitter").
type ID string

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// Binding ties a provider to its handshake implementation.
type Binding struct {
	// Factory constructs the strategy from an adapted config.
	Factory oauth.Factory

	// UniqueIDField names the unique identifier field of the provider profile.
	UniqueIDField string

	// StrategyName overrides the flow name used by the auth engine.
	// Empty means the provider ID is used.
	StrategyName string
}

// FlowName returns the name the auth engine knows the strategy by.
func (b Binding) FlowName(id ID) string {
	if b.StrategyName != "" {
		return b.StrategyName
	}
	return string(id)
}

// Registry is an immutable catalogue of provider bindings.
// Safe for concurrent use: it is never mutated after construction.
type Registry struct {
	bindings map[ID]Binding
}

// NewRegistry builds a registry from the given bindings.
// The map is copied, later changes to it are not observed.
func NewRegistry(bindings map[ID]Binding) *Registry {
	return &Registry{bindings: maps.Clone(bindings)}
}

// Lookup resolves a provider binding.
// Returns ErrUnsupportedProvider if the provider is unknown or has no factory.
func (r *Registry) Lookup(id ID) (Binding, error) {
	if r == nil {
		return Binding{}, fmt.Errorf("%w: %q", ErrUnsupportedProvider, id)
	}
	b, ok := r.bindings[id]
	if !ok || b.Factory == nil {
		return Binding{}, fmt.Errorf("%w: %q", ErrUnsupportedProvider, id)
	}
	return b, nil
}

// Has reports whether the provider is registered.
func (r *Registry) Has(id ID) bool {
	_, err := r.Lookup(id)
	return err == nil
}

// IDs returns the registered provider identifiers in sorted order.
func (r *Registry) IDs() []ID {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.bindings))
}
