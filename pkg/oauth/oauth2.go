package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const stateCookiePrefix = "oauth_state_"

// OAuth2Config is the adapted configuration understood by OAuth2 strategies.
type OAuth2Config struct {
	Extra             map[string]any `mapstructure:",remain"`
	ClientID          string         `mapstructure:"clientID" validate:"required"`
	ClientSecret      string         `mapstructure:"clientSecret"`
	CallbackURL       string         `mapstructure:"callbackURL" validate:"required"`
	AuthorizationURL  string         `mapstructure:"authorizationURL" validate:"omitempty,url"`
	TokenURL          string         `mapstructure:"tokenURL" validate:"omitempty,url"`
	ProfileURL        string         `mapstructure:"profileURL" validate:"omitempty,url"`
	Scope             []string       `mapstructure:"scope"`
	PassReqToCallback bool           `mapstructure:"passReqToCallback"`
}

// OAuth2Strategy runs the authorization code flow against an Endpoint.
type OAuth2Strategy struct {
	verify     VerifyFunc
	opts       *options
	secret     func(ctx context.Context) (string, error)
	fetch      func(ctx context.Context, r *http.Request, cfg *oauth2.Config, tok *oauth2.Token) (RawProfile, error)
	authParams map[string]string
	endpoint   Endpoint
	name       string
	cfg        OAuth2Config
}

// OAuth2 returns a Factory for the given endpoint.
//
//	s, err := oauth.OAuth2(oauth.GitHubEndpoint)("github", cfg, verify)
func OAuth2(ep Endpoint) Factory {
	return func(name string, cfg map[string]any, verify VerifyFunc, opts ...Option) (Strategy, error) {
		var c OAuth2Config
		if err := decodeConfig(cfg, &c); err != nil {
			return nil, err
		}
		if c.ClientSecret == "" {
			return nil, errors.Join(ErrInvalidConfig, errors.New("clientSecret is required"))
		}
		return newOAuth2(name, ep, c, verify, newOptions(opts)), nil
	}
}

func newOAuth2(name string, ep Endpoint, c OAuth2Config, verify VerifyFunc, o *options) *OAuth2Strategy {
	if c.AuthorizationURL != "" {
		ep.Auth.AuthURL = c.AuthorizationURL
	}
	if c.TokenURL != "" {
		ep.Auth.TokenURL = c.TokenURL
	}
	if c.ProfileURL != "" {
		ep.ProfileURL = c.ProfileURL
	}
	if len(c.Scope) > 0 {
		ep.Scopes = c.Scope
	}

	s := &OAuth2Strategy{
		name:     name,
		endpoint: ep,
		cfg:      c,
		verify:   verify,
		opts:     o,
	}
	s.secret = func(context.Context) (string, error) { return c.ClientSecret, nil }
	s.fetch = s.fetchProfile
	return s
}

// Name returns the flow name.
func (s *OAuth2Strategy) Name() string { return s.name }

// Challenge stores a random state in a signed cookie and redirects to the
// provider. A "scope" parameter replaces the configured scopes; other
// parameters are added to the authorization URL.
func (s *OAuth2Strategy) Challenge(w http.ResponseWriter, r *http.Request, params map[string]string) error {
	state := uuid.NewString()
	if err := s.opts.cookies.SetSigned(w, s.stateCookie(), state, int(s.opts.stateTTL.Seconds())); err != nil {
		return err
	}

	cfg := s.config(r, "")
	var opts []oauth2.AuthCodeOption
	for k, v := range s.authParams {
		opts = append(opts, oauth2.SetAuthURLParam(k, v))
	}
	for k, v := range params {
		if k == "scope" {
			cfg.Scopes = splitScope(v)
			continue
		}
		opts = append(opts, oauth2.SetAuthURLParam(k, v))
	}

	http.Redirect(w, r, cfg.AuthCodeURL(state, opts...), http.StatusFound)
	return nil
}

// Complete checks the state, exchanges the code, fetches the profile and
// calls VerifyFunc. The callback may arrive as GET or form POST.
func (s *OAuth2Strategy) Complete(w http.ResponseWriter, r *http.Request) (any, error) {
	if e := r.FormValue("error"); e != "" {
		return nil, errors.Join(ErrAccessDenied, fmt.Errorf("%s: %s", e, r.FormValue("error_description")))
	}

	want, err := s.opts.cookies.GetSigned(r, s.stateCookie())
	s.opts.cookies.Clear(w, s.stateCookie())
	if err != nil || want == "" || r.FormValue("state") != want {
		return nil, ErrStateMismatch
	}

	code := r.FormValue("code")
	if code == "" {
		return nil, ErrMissingCode
	}

	ctx := s.clientContext(r.Context())
	secret, err := s.secret(ctx)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}
	cfg := s.config(r, secret)

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}

	raw, err := s.fetch(ctx, r, cfg, tok)
	if err != nil {
		return nil, err
	}
	return s.verify(r, tok.AccessToken, tok.RefreshToken, raw)
}

func (s *OAuth2Strategy) stateCookie() string { return stateCookiePrefix + s.name }

func (s *OAuth2Strategy) config(r *http.Request, secret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: secret,
		RedirectURL:  callbackURL(r, s.cfg.CallbackURL),
		Scopes:       s.endpoint.Scopes,
		Endpoint:     s.endpoint.Auth,
	}
}

func (s *OAuth2Strategy) fetchProfile(ctx context.Context, _ *http.Request, cfg *oauth2.Config, tok *oauth2.Token) (RawProfile, error) {
	u := s.endpoint.ProfileURL
	if s.endpoint.TokenParam != "" {
		var err error
		if u, err = withQuery(u, map[string]string{s.endpoint.TokenParam: tok.AccessToken}); err != nil {
			return RawProfile{Provider: s.name}, errors.Join(ErrFetchFailed, err)
		}
	}
	return fetchJSON(ctx, cfg.Client(ctx, tok), s.name, u)
}

func (s *OAuth2Strategy) clientContext(ctx context.Context) context.Context {
	if s.opts.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, s.opts.httpClient)
	}
	return ctx
}
