package oauth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/socialauth/pkg/cache"
	"github.com/dmitrymomot/socialauth/pkg/cookie"
)

// Option configures a strategy.
type Option func(*options)

type options struct {
	httpClient *http.Client
	cookies    *cookie.Manager
	secrets    cache.Cache[string]
	logger     *slog.Logger
	stateTTL   time.Duration
}

func newOptions(opts []Option) *options {
	o := &options{stateTTL: 10 * time.Minute}
	for _, opt := range opts {
		opt(o)
	}
	if o.cookies == nil {
		o.cookies = cookie.MustNew(cookie.WithSecret(cookie.RandomSecret()))
	}
	if o.secrets == nil {
		o.secrets = cache.NewMemory[string](cache.MemoryConfig{DefaultTTL: o.stateTTL})
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// WithHTTPClient sets the client used for token and profile requests.
// Useful for tests and for custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithCookies sets the manager that signs the OAuth2 state cookie.
// It must have a secret. Defaults to a manager with a random secret.
func WithCookies(m *cookie.Manager) Option {
	return func(o *options) { o.cookies = m }
}

// WithSecrets sets the store for OAuth1 request-token secrets and cached
// Apple client secrets. Use a shared backend when callbacks may land on
// another instance.
func WithSecrets(c cache.Cache[string]) Option {
	return func(o *options) { o.secrets = c }
}

// WithStateTTL bounds how long a started login may take. Default: 10 minutes.
func WithStateTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.stateTTL = d
		}
	}
}

// WithLogger sets the strategy logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
