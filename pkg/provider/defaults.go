package provider

import "github.com/dmitrymomot/socialauth/pkg/oauth"

// Supported provider identifiers.
const (
	Facebook   ID = "facebook"
	Twitter    ID = "twitter"
	Instagram  ID = "instagram"
	LinkedIn   ID = "linkedin"
	GitHub     ID = "github"
	Google     ID = "google"
	Amazon     ID = "amazon"
	Foursquare ID = "foursquare"
	Imgur      ID = "imgur"
	Meetup     ID = "meetup"
	Apple      ID = "apple"
	Tumblr     ID = "tumblr"
)

// DefaultRegistry returns the bindings of all built-in providers.
//
// Unique-id fields follow each provider's payload: apple uses "sub" (the
// id_token subject), amazon "user_id" and tumblr "name". Setups that stored
// "id" for these providers must map their existing keys or pass a custom
// registry through WithRegistry.
func DefaultRegistry() *Registry {
	return NewRegistry(map[ID]Binding{
		Facebook:   {Factory: oauth.OAuth2(oauth.FacebookEndpoint), UniqueIDField: "id"},
		Twitter:    {Factory: oauth.OAuth1(oauth.TwitterEndpoint), UniqueIDField: "id"},
		Instagram:  {Factory: oauth.OAuth2(oauth.InstagramEndpoint), UniqueIDField: "id"},
		LinkedIn:   {Factory: oauth.OAuth1(oauth.LinkedInEndpoint), UniqueIDField: "id"},
		GitHub:     {Factory: oauth.OAuth2(oauth.GitHubEndpoint), UniqueIDField: "id"},
		Google:     {Factory: oauth.OAuth2(oauth.GoogleEndpoint), UniqueIDField: "id"},
		Amazon:     {Factory: oauth.OAuth2(oauth.AmazonEndpoint), UniqueIDField: "user_id"},
		Foursquare: {Factory: oauth.OAuth2(oauth.FoursquareEndpoint), UniqueIDField: "id"},
		Imgur:      {Factory: oauth.OAuth2(oauth.ImgurEndpoint), UniqueIDField: "id"},
		Meetup:     {Factory: oauth.OAuth1(oauth.MeetupEndpoint), UniqueIDField: "id"},
		Apple:      {Factory: oauth.NewApple, UniqueIDField: "sub"},
		Tumblr:     {Factory: oauth.OAuth1(oauth.TumblrEndpoint), UniqueIDField: "name"},
	})
}

// consumerRename maps OAuth2-style credential names onto the OAuth1 ones.
var consumerRename = []Rename{
	{From: "clientID", To: "consumerKey"},
	{From: "clientSecret", To: "consumerSecret"},
}

// DefaultRules returns the special cases of the built-in providers.
func DefaultRules() *RuleSet {
	return NewRuleSet(map[ID]Rule{
		Twitter: {
			Rename: consumerRename,
			StaticMerge: map[string]any{
				"userAuthorizationURL": "https://api.twitter.com/oauth/authorize",
			},
		},
		LinkedIn: {Rename: consumerRename},
		Meetup:   {Rename: consumerRename},
		Tumblr:   {Rename: consumerRename},
		Apple: {
			Inject: map[string]InjectFunc{
				"teamID":           extraField("teamID"),
				"keyID":            extraField("keyID"),
				"privateKeyString": extraField("privateKeyString"),
			},
		},
		Google: {
			Inject: map[string]InjectFunc{
				"returnURL": func(ctx InjectContext) any {
					return ctx.BaseURL + ctx.Settings.URLs.Callback
				},
				"realm": func(ctx InjectContext) any {
					return ctx.BaseURL + "/"
				},
			},
		},
	})
}

func extraField(name string) InjectFunc {
	return func(ctx InjectContext) any {
		return ctx.Settings.Extra(name)
	}
}
