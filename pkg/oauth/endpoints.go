package oauth

import (
	"github.com/dghubble/oauth1"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// Endpoint describes an OAuth2 provider.
type Endpoint struct {
	Auth       oauth2.Endpoint
	ProfileURL string
	// TokenParam, when set, also sends the access token as this query parameter.
	TokenParam string
	// Scopes requested when neither the config nor the entry point sets any.
	Scopes []string
}

// OAuth1Endpoint describes an OAuth 1.0a provider.
type OAuth1Endpoint struct {
	Auth       oauth1.Endpoint
	ProfileURL string
}

var (
	FacebookEndpoint = Endpoint{
		Auth: oauth2.Endpoint{
			AuthURL:  "https://www.facebook.com/v3.2/dialog/oauth",
			TokenURL: "https://graph.facebook.com/v3.2/oauth/access_token",
		},
		ProfileURL: "https://graph.facebook.com/v3.2/me?fields=id,name,first_name,last_name,email",
	}

	GitHubEndpoint = Endpoint{
		Auth:       github.Endpoint,
		ProfileURL: "https://api.github.com/user",
	}

	GoogleEndpoint = Endpoint{
		Auth:       google.Endpoint,
		ProfileURL: "https://openidconnect.googleapis.com/v1/userinfo",
		Scopes:     []string{"openid", "email", "profile"},
	}

	InstagramEndpoint = Endpoint{
		Auth: oauth2.Endpoint{
			AuthURL:   "https://api.instagram.com/oauth/authorize",
			TokenURL:  "https://api.instagram.com/oauth/access_token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		ProfileURL: "https://api.instagram.com/v1/users/self",
		TokenParam: "access_token",
	}

	AmazonEndpoint = Endpoint{
		Auth: oauth2.Endpoint{
			AuthURL:  "https://www.amazon.com/ap/oa",
			TokenURL: "https://api.amazon.com/auth/o2/token",
		},
		ProfileURL: "https://api.amazon.com/user/profile",
		Scopes:     []string{"profile"},
	}

	FoursquareEndpoint = Endpoint{
		Auth: oauth2.Endpoint{
			AuthURL:   "https://foursquare.com/oauth2/authenticate",
			TokenURL:  "https://foursquare.com/oauth2/access_token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		ProfileURL: "https://api.foursquare.com/v2/users/self?v=20140806",
		TokenParam: "oauth_token",
	}

	ImgurEndpoint = Endpoint{
		Auth: oauth2.Endpoint{
			AuthURL:  "https://api.imgur.com/oauth2/authorize",
			TokenURL: "https://api.imgur.com/oauth2/token",
		},
		ProfileURL: "https://api.imgur.com/3/account/me",
	}

	AppleEndpoint = Endpoint{
		Auth: oauth2.Endpoint{
			AuthURL:   "https://appleid.apple.com/auth/authorize",
			TokenURL:  "https://appleid.apple.com/auth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
)

var (
	TwitterEndpoint = OAuth1Endpoint{
		Auth: oauth1.Endpoint{
			RequestTokenURL: "https://api.twitter.com/oauth/request_token",
			AuthorizeURL:    "https://api.twitter.com/oauth/authenticate",
			AccessTokenURL:  "https://api.twitter.com/oauth/access_token",
		},
		ProfileURL: "https://api.twitter.com/1.1/account/verify_credentials.json",
	}

	LinkedInEndpoint = OAuth1Endpoint{
		Auth: oauth1.Endpoint{
			RequestTokenURL: "https://api.linkedin.com/uas/oauth/requestToken",
			AuthorizeURL:    "https://www.linkedin.com/uas/oauth/authenticate",
			AccessTokenURL:  "https://api.linkedin.com/uas/oauth/accessToken",
		},
		ProfileURL: "https://api.linkedin.com/v1/people/~:(id,first-name,last-name,email-address)?format=json",
	}

	MeetupEndpoint = OAuth1Endpoint{
		Auth: oauth1.Endpoint{
			RequestTokenURL: "https://api.meetup.com/oauth/request/",
			AuthorizeURL:    "https://secure.meetup.com/authorize/",
			AccessTokenURL:  "https://api.meetup.com/oauth/access/",
		},
		ProfileURL: "https://api.meetup.com/2/members?member_id=self",
	}

	TumblrEndpoint = OAuth1Endpoint{
		Auth: oauth1.Endpoint{
			RequestTokenURL: "https://www.tumblr.com/oauth/request_token",
			AuthorizeURL:    "https://www.tumblr.com/oauth/authorize",
			AccessTokenURL:  "https://www.tumblr.com/oauth/access_token",
		},
		ProfileURL: "https://api.tumblr.com/v2/user/info",
	}
)
