package socialauth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/socialauth/internal"
	"github.com/dmitrymomot/socialauth/pkg/cache"
	"github.com/dmitrymomot/socialauth/pkg/cookie"
	"github.com/dmitrymomot/socialauth/pkg/metrics"
	"github.com/dmitrymomot/socialauth/pkg/profile"
	"github.com/dmitrymomot/socialauth/pkg/provider"
	"github.com/dmitrymomot/socialauth/pkg/session"
)

// Type aliases - public API
type (
	// Manager wires configured providers into login routes.
	Manager = internal.Manager

	// Option configures the Manager.
	Option = internal.Option

	// AuthInfo describes a completed provider handshake.
	AuthInfo = internal.AuthInfo

	// AuthFunc resolves the application user of a completed handshake.
	AuthFunc = internal.AuthFunc

	// ProviderID names an identity provider.
	ProviderID = provider.ID

	// Settings is the provider-agnostic configuration of one provider.
	Settings = provider.Settings

	// Credentials are the client credentials issued by a provider.
	Credentials = provider.Credentials

	// URLs are the route paths of a provider flow.
	URLs = provider.URLs

	// Profile is a normalized user profile.
	Profile = profile.Profile

	// Session is a completed login stored server-side.
	Session = session.Session

	// SessionStore persists sessions.
	SessionStore = session.Store

	// Flash is a one-shot message carried across a redirect.
	Flash = cookie.Flash

	// CookieOption configures the cookie manager.
	CookieOption = cookie.Option
)

// Errors
var (
	ErrUnsupportedProvider = provider.ErrUnsupportedProvider
	ErrNoUser              = internal.ErrNoUser
	ErrSessionsDisabled    = internal.ErrSessionsDisabled
	ErrDuplicateProvider   = internal.ErrDuplicateProvider
)

// New creates a Manager. Bind providers with RegisterAll, then serve
// Handler or mount the routes into an existing chi router with Routes.
//
//	auth, err := socialauth.New(
//	    socialauth.WithBaseURL("https://example.com"),
//	    socialauth.WithOnAuth(func(r *http.Request, info socialauth.AuthInfo) (any, error) {
//	        return users.FindOrCreate(r.Context(), info.Provider, info.Subject(), info.Profile)
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := auth.RegisterAll(settings); err != nil {
//	    log.Warn("some providers were skipped", "error", err)
//	}
func New(opts ...Option) (*Manager, error) {
	return internal.NewManager(opts...)
}

// WithBaseURL sets the absolute URL callback paths are appended to.
func WithBaseURL(u string) Option {
	return internal.WithBaseURL(u)
}

// WithLogout sets the logout route and its redirect target.
func WithLogout(path, after string) Option {
	return internal.WithLogout(path, after)
}

// WithDisableSession turns off sessions and the logout route.
func WithDisableSession() Option {
	return internal.WithDisableSession()
}

// WithReturnRaw hands the provider's raw JSON to the auth callback.
func WithReturnRaw() Option {
	return internal.WithReturnRaw()
}

// WithOnAuth sets the callback that resolves the application user.
// Without it the normalized profile is the user.
func WithOnAuth(fn AuthFunc) Option {
	return internal.WithOnAuth(fn)
}

// WithRegistry replaces the provider catalogue.
func WithRegistry(r *provider.Registry) Option {
	return internal.WithRegistry(r)
}

// WithRules replaces the provider special cases.
func WithRules(rs *provider.RuleSet) Option {
	return internal.WithRules(rs)
}

// WithNormalizer replaces the profile normalizer.
func WithNormalizer(n *profile.Normalizer) Option {
	return internal.WithNormalizer(n)
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithSessionStore sets where sessions live.
func WithSessionStore(s SessionStore) Option {
	return internal.WithSessionStore(s)
}

// WithSessionTTL sets how long a login lasts.
func WithSessionTTL(d time.Duration) Option {
	return internal.WithSessionTTL(d)
}

// WithStateCache sets where OAuth1 token secrets and Apple client secrets are kept.
func WithStateCache(c cache.Cache[string]) Option {
	return internal.WithStateCache(c)
}

// WithStateTTL bounds how long a started login may take.
func WithStateTTL(d time.Duration) Option {
	return internal.WithStateTTL(d)
}

// WithCookieOptions configures the state, flash and session cookies.
func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

// WithMetrics records setup and login counters.
func WithMetrics(c *metrics.Collector) Option {
	return internal.WithMetrics(c)
}

// WithHTTPClient sets the client for provider requests.
func WithHTTPClient(c *http.Client) Option {
	return internal.WithHTTPClient(c)
}

// DefaultRegistry returns the built-in providers.
func DefaultRegistry() *provider.Registry {
	return provider.DefaultRegistry()
}

// DefaultRules returns the special cases of the built-in providers.
func DefaultRules() *provider.RuleSet {
	return provider.DefaultRules()
}
