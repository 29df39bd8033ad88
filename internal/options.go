package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/socialauth/pkg/cache"
	"github.com/dmitrymomot/socialauth/pkg/cookie"
	"github.com/dmitrymomot/socialauth/pkg/metrics"
	"github.com/dmitrymomot/socialauth/pkg/profile"
	"github.com/dmitrymomot/socialauth/pkg/provider"
	"github.com/dmitrymomot/socialauth/pkg/session"
)

// Option configures a Manager.
type Option func(*Manager)

// WithBaseURL sets the absolute URL callback paths are appended to.
// Default: http://127.0.0.1.
func WithBaseURL(u string) Option {
	return func(m *Manager) {
		if u != "" {
			m.baseURL = u
		}
	}
}

// WithLogout sets the logout route and where it redirects to.
// Default: /logout, then /.
func WithLogout(path, after string) Option {
	return func(m *Manager) {
		if path != "" {
			m.logoutURL = path
		}
		if after != "" {
			m.logoutAfter = after
		}
	}
}

// WithDisableSession turns off sessions. Logins still redirect, but no
// session is created and no logout route is bound.
func WithDisableSession() Option {
	return func(m *Manager) { m.disableSession = true }
}

// WithReturnRaw passes the provider's raw JSON to the auth callback instead
// of the normalized profile.
func WithReturnRaw() Option {
	return func(m *Manager) { m.returnRaw = true }
}

// WithOnAuth sets the callback that resolves the application user.
func WithOnAuth(fn AuthFunc) Option {
	return func(m *Manager) {
		if fn != nil {
			m.onAuth = fn
		}
	}
}

// WithRegistry replaces the provider catalogue.
func WithRegistry(r *provider.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithRules replaces the provider special cases used by the adapter.
func WithRules(rs *provider.RuleSet) Option {
	return func(m *Manager) {
		if rs != nil {
			m.rules = rs
		}
	}
}

// WithNormalizer replaces the profile normalizer.
func WithNormalizer(n *profile.Normalizer) Option {
	return func(m *Manager) {
		if n != nil {
			m.normalizer = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSessionStore sets where sessions live, e.g. a session.CacheStore
// over cache.NewRedis. Default: in-memory.
func WithSessionStore(s session.Store) Option {
	return func(m *Manager) { m.sessionStore = s }
}

// WithSessionTTL sets how long a login lasts. Default: 24h.
func WithSessionTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.sessionTTL = d
		}
	}
}

// WithStateCache sets where OAuth1 request-token secrets and Apple client
// secrets are kept. Default: in-memory.
func WithStateCache(c cache.Cache[string]) Option {
	return func(m *Manager) { m.stateCache = c }
}

// WithStateTTL bounds how long a started login may take. Default: 10m.
func WithStateTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.stateTTL = d
		}
	}
}

// WithCookieOptions configures the cookies for state, flash and session.
// Without cookie.WithSecret a random secret is used, which does not survive
// restarts or span instances.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(m *Manager) { m.cookieOpts = append(m.cookieOpts, opts...) }
}

// WithMetrics records setup and login counters.
func WithMetrics(c *metrics.Collector) Option {
	return func(m *Manager) { m.metrics = c }
}

// WithHTTPClient sets the client used for provider token and profile requests.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.httpClient = c }
}
