// Package oauth implements the provider handshakes behind social login.
//
// A Strategy runs one provider's flow in two steps: Challenge redirects the
// browser to the provider, Complete handles the callback, obtains tokens,
// fetches the profile and hands everything to a VerifyFunc. Strategies are
// built by a Factory from a flat configuration map, the shape produced by
// pkg/adapter:
//
//	factory := oauth.OAuth2(oauth.GitHubEndpoint)
//	s, err := factory("github", map[string]any{
//		"clientID":     id,
//		"clientSecret": secret,
//		"callbackURL":  "https://example.com/auth/github/callback",
//		"scope":        "read:user user:email",
//	}, func(r *http.Request, access, refresh string, raw oauth.RawProfile) (any, error) {
//		return raw.JSON, nil
//	})
//
// Three families are provided:
//
//   - OAuth2: authorization code flow with a signed state cookie.
//   - OAuth1: three-legged OAuth 1.0a; expects consumerKey/consumerSecret.
//     Request-token secrets live in a cache.Cache and are consumed once.
//   - NewApple: OAuth2 with an ES256 client-secret JWT (teamID, keyID,
//     privateKeyString) and the profile taken from the id_token.
//
// Relative callback URLs are resolved against the incoming request.
// All failures wrap one of the package's sentinel errors:
//
//	if errors.Is(err, oauth.ErrAccessDenied) {
//		// user pressed cancel
//	}
package oauth
