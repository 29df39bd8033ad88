// Package profile reduces provider-specific profile payloads to one schema.
//
// Each provider wraps its user object differently. Normalize dispatches on the
// provider identifier:
//
//	p, err := profile.Normalize(provider.Instagram, raw) // {"data": {...}} -> {...}
//	if errors.Is(err, profile.ErrShapeMismatch) {
//		// treat as a failed login
//	}
//	id := p.ID()
//
// Built-in rules:
//
//   - foursquare, tumblr: unwrap response.user
//   - imgur, instagram: unwrap data
//   - meetup: first element of results
//   - google: sub/given_name/family_name/picture mapped onto id/first_name/last_name/avatar
//
// Every other provider (facebook, twitter, github, ...) passes its payload
// through unchanged. Add rules with WithRule:
//
//	n := profile.New(profile.WithRule("github", myGitHubRule))
package profile
