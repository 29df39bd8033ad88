package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dghubble/oauth1"
)

// OAuth1Config is the adapted configuration understood by OAuth1 strategies.
type OAuth1Config struct {
	Extra                map[string]any `mapstructure:",remain"`
	ConsumerKey          string         `mapstructure:"consumerKey" validate:"required"`
	ConsumerSecret       string         `mapstructure:"consumerSecret" validate:"required"`
	CallbackURL          string         `mapstructure:"callbackURL" validate:"required"`
	RequestTokenURL      string         `mapstructure:"requestTokenURL" validate:"omitempty,url"`
	UserAuthorizationURL string         `mapstructure:"userAuthorizationURL" validate:"omitempty,url"`
	AccessTokenURL       string         `mapstructure:"accessTokenURL" validate:"omitempty,url"`
	ProfileURL           string         `mapstructure:"profileURL" validate:"omitempty,url"`
}

// OAuth1Strategy runs the three-legged OAuth 1.0a flow. Request-token secrets
// are kept server side and can be used once.
type OAuth1Strategy struct {
	verify   VerifyFunc
	opts     *options
	endpoint OAuth1Endpoint
	name     string
	cfg      OAuth1Config
}

// OAuth1 returns a Factory for the given endpoint. The configuration must use
// consumerKey/consumerSecret.
func OAuth1(ep OAuth1Endpoint) Factory {
	return func(name string, cfg map[string]any, verify VerifyFunc, opts ...Option) (Strategy, error) {
		var c OAuth1Config
		if err := decodeConfig(cfg, &c); err != nil {
			return nil, err
		}
		if c.RequestTokenURL != "" {
			ep.Auth.RequestTokenURL = c.RequestTokenURL
		}
		if c.UserAuthorizationURL != "" {
			ep.Auth.AuthorizeURL = c.UserAuthorizationURL
		}
		if c.AccessTokenURL != "" {
			ep.Auth.AccessTokenURL = c.AccessTokenURL
		}
		if c.ProfileURL != "" {
			ep.ProfileURL = c.ProfileURL
		}
		return &OAuth1Strategy{
			name:     name,
			endpoint: ep,
			cfg:      c,
			verify:   verify,
			opts:     newOptions(opts),
		}, nil
	}
}

// Name returns the flow name.
func (s *OAuth1Strategy) Name() string { return s.name }

// Challenge obtains a request token and redirects to the provider's
// authorization page. params are added to that page's URL.
func (s *OAuth1Strategy) Challenge(w http.ResponseWriter, r *http.Request, params map[string]string) error {
	cfg := s.config(r)

	token, secret, err := cfg.RequestToken()
	if err != nil {
		return errors.Join(ErrExchangeFailed, fmt.Errorf("request token: %w", err))
	}
	if err := s.opts.secrets.Set(r.Context(), s.secretKey(token), secret, s.opts.stateTTL); err != nil {
		return err
	}

	u, err := cfg.AuthorizationURL(token)
	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	target, err := withQuery(u.String(), params)
	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	http.Redirect(w, r, target, http.StatusFound)
	return nil
}

// Complete trades the verifier for an access token and fetches the profile.
func (s *OAuth1Strategy) Complete(w http.ResponseWriter, r *http.Request) (any, error) {
	if denied := r.FormValue("denied"); denied != "" {
		_ = s.opts.secrets.Delete(r.Context(), s.secretKey(denied))
		return nil, ErrAccessDenied
	}

	token, verifier, err := oauth1.ParseAuthorizationCallback(r)
	if err != nil {
		return nil, errors.Join(ErrMissingCode, err)
	}

	secret, err := s.opts.secrets.Take(r.Context(), s.secretKey(token))
	if err != nil {
		return nil, errors.Join(ErrStateMismatch, err)
	}

	cfg := s.config(r)
	accessToken, accessSecret, err := cfg.AccessToken(token, secret, verifier)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, fmt.Errorf("access token: %w", err))
	}

	ctx := r.Context()
	if s.opts.httpClient != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, s.opts.httpClient)
	}
	client := cfg.Client(ctx, oauth1.NewToken(accessToken, accessSecret))

	raw, err := fetchJSON(ctx, client, s.name, s.endpoint.ProfileURL)
	if err != nil {
		return nil, err
	}
	return s.verify(r, accessToken, accessSecret, raw)
}

func (s *OAuth1Strategy) secretKey(token string) string {
	return "oauth1:" + s.name + ":" + token
}

func (s *OAuth1Strategy) config(r *http.Request) *oauth1.Config {
	return &oauth1.Config{
		ConsumerKey:    s.cfg.ConsumerKey,
		ConsumerSecret: s.cfg.ConsumerSecret,
		CallbackURL:    callbackURL(r, s.cfg.CallbackURL),
		Endpoint:       s.endpoint.Auth,
	}
}
