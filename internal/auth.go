package internal

import (
	"net/http"

	"github.com/dmitrymomot/socialauth/pkg/oauth"
	"github.com/dmitrymomot/socialauth/pkg/profile"
	"github.com/dmitrymomot/socialauth/pkg/provider"
)

// AuthInfo is everything known about a completed provider handshake.
type AuthInfo struct {
	// Profile is the normalized profile.Profile, or the provider's raw JSON
	// object when the manager was built with WithReturnRaw.
	Profile       map[string]any
	Raw           oauth.RawProfile
	Provider      provider.ID
	UniqueIDField string
	AccessToken   string
	// RefreshToken carries the token secret for OAuth1 providers.
	RefreshToken string
}

// Subject returns the provider's unique user id, read from UniqueIDField of
// the profile and then of the raw payload.
func (i AuthInfo) Subject() string {
	if v := profile.Profile(i.Profile).String(i.UniqueIDField); v != "" {
		return v
	}
	return profile.Profile(i.Raw.JSON).String(i.UniqueIDField)
}

// AuthFunc resolves the application user of a completed handshake.
// A nil user with a nil error counts as a failed login.
type AuthFunc func(r *http.Request, info AuthInfo) (any, error)

// ProfileAuth is the default AuthFunc: the user is the profile itself.
func ProfileAuth(_ *http.Request, info AuthInfo) (any, error) {
	return info.Profile, nil
}

// result is what the completion closure hands back through the strategy.
type result struct {
	User     any
	Provider provider.ID
	Subject  string
}
