package provider_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/pkg/oauth"
	"github.com/dmitrymomot/socialauth/pkg/provider"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := provider.DefaultRegistry()

	t.Run("known provider", func(t *testing.T) {
		t.Parallel()
		b, err := reg.Lookup(provider.Google)
		require.NoError(t, err)
		require.NotNil(t, b.Factory)
		require.Equal(t, "id", b.UniqueIDField)
		require.Equal(t, "google", b.FlowName(provider.Google))
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		_, err := reg.Lookup("myspace")
		require.ErrorIs(t, err, provider.ErrUnsupportedProvider)
		require.Contains(t, err.Error(), "myspace")
		require.False(t, reg.Has("myspace"))
	})

	t.Run("binding without factory", func(t *testing.T) {
		t.Parallel()
		r := provider.NewRegistry(map[provider.ID]provider.Binding{"broken": {UniqueIDField: "id"}})
		_, err := r.Lookup("broken")
		require.ErrorIs(t, err, provider.ErrUnsupportedProvider)
	})

	t.Run("nil registry", func(t *testing.T) {
		t.Parallel()
		var r *provider.Registry
		_, err := r.Lookup(provider.Google)
		require.ErrorIs(t, err, provider.ErrUnsupportedProvider)
		require.Nil(t, r.IDs())
	})
}

func TestDefaultRegistry_UniqueIDFields(t *testing.T) {
	t.Parallel()

	r := provider.DefaultRegistry()
	for id, want := range map[provider.ID]string{
		provider.Apple:    "sub",
		provider.Amazon:   "user_id",
		provider.Tumblr:   "name",
		provider.Google:   "id",
		provider.Facebook: "id",
	} {
		b, err := r.Lookup(id)
		require.NoError(t, err)
		require.Equal(t, want, b.UniqueIDField, id)
	}
}

func TestRegistry_IsImmutable(t *testing.T) {
	t.Parallel()

	src := map[provider.ID]provider.Binding{
		"custom": {Factory: oauth.OAuth2(oauth.GitHubEndpoint), UniqueIDField: "id", StrategyName: "custom-flow"},
	}
	reg := provider.NewRegistry(src)
	delete(src, "custom")

	b, err := reg.Lookup("custom")
	require.NoError(t, err)
	require.Equal(t, "custom-flow", b.FlowName("custom"))
}

func TestRegistry_IDs(t *testing.T) {
	t.Parallel()

	ids := provider.DefaultRegistry().IDs()
	require.Len(t, ids, 12)
	require.Equal(t, provider.Amazon, ids[0])
	require.Contains(t, ids, provider.Tumblr)
	require.Contains(t, ids, provider.Apple)
}

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	rules := provider.DefaultRules()

	t.Run("oauth1 providers rename credentials", func(t *testing.T) {
		t.Parallel()
		for _, id := range []provider.ID{provider.Twitter, provider.LinkedIn, provider.Meetup, provider.Tumblr} {
			r := rules.For(id)
			require.Len(t, r.Rename, 2, id)
			require.Equal(t, "consumerKey", r.Rename[0].To, id)
			require.Equal(t, "consumerSecret", r.Rename[1].To, id)
		}
	})

	t.Run("google injections", func(t *testing.T) {
		t.Parallel()
		r := rules.For(provider.Google)
		ctx := provider.InjectContext{
			BaseURL:  "https://app.example.com",
			Settings: provider.Settings{URLs: provider.URLs{Callback: "/auth/google/callback"}},
		}
		require.Equal(t, "https://app.example.com/auth/google/callback", r.Inject["returnURL"](ctx))
		require.Equal(t, "https://app.example.com/", r.Inject["realm"](ctx))
	})

	t.Run("apple injections read extra credentials", func(t *testing.T) {
		t.Parallel()
		r := rules.For(provider.Apple)
		ctx := provider.InjectContext{Settings: provider.Settings{Credentials: provider.Credentials{
			Extra: map[string]any{"teamID": "TEAM", "keyID": "KEY"},
		}}}
		require.Equal(t, "TEAM", r.Inject["teamID"](ctx))
		require.Equal(t, "KEY", r.Inject["keyID"](ctx))
		require.Equal(t, "", r.Inject["privateKeyString"](ctx))
	})

	t.Run("no rule", func(t *testing.T) {
		t.Parallel()
		require.True(t, rules.For(provider.Facebook).IsZero())
		require.False(t, rules.For(provider.Twitter).IsZero())
	})
}

func TestSettings_Clone(t *testing.T) {
	t.Parallel()

	s := provider.Settings{
		AuthParameters:    map[string]string{"scope": "email"},
		StrategyOverrides: map[string]any{"profileFields": "id"},
		Credentials:       provider.Credentials{Extra: map[string]any{"teamID": "T"}},
	}
	c := s.Clone()
	c.AuthParameters["scope"] = "changed"
	c.StrategyOverrides["profileFields"] = "changed"
	c.Credentials.Extra["teamID"] = "changed"

	require.Equal(t, "email", s.AuthParameters["scope"])
	require.Equal(t, "id", s.StrategyOverrides["profileFields"])
	require.Equal(t, "T", s.Extra("teamID"))
}
