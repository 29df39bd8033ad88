package internal

import (
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"

	"github.com/dmitrymomot/socialauth/pkg/adapter"
	"github.com/dmitrymomot/socialauth/pkg/cache"
	"github.com/dmitrymomot/socialauth/pkg/cookie"
	"github.com/dmitrymomot/socialauth/pkg/logger"
	"github.com/dmitrymomot/socialauth/pkg/metrics"
	"github.com/dmitrymomot/socialauth/pkg/oauth"
	"github.com/dmitrymomot/socialauth/pkg/profile"
	"github.com/dmitrymomot/socialauth/pkg/provider"
	"github.com/dmitrymomot/socialauth/pkg/session"
)

const (
	defaultBaseURL     = "http://127.0.0.1"
	defaultLogoutURL   = "/logout"
	defaultLogoutAfter = "/"
	defaultSessionTTL  = 24 * time.Hour
	defaultStateTTL    = 10 * time.Minute
	janitorInterval    = time.Minute
)

type route struct {
	handler http.HandlerFunc
	method  string
	pattern string
}

type closer interface{ Close() error }

// Manager wires configured providers into login routes.
// Registration happens at startup; the manager is read-only once serving.
type Manager struct {
	registry     *provider.Registry
	rules        *provider.RuleSet
	normalizer   *profile.Normalizer
	onAuth       AuthFunc
	logger       *slog.Logger
	metrics      *metrics.Collector
	httpClient   *http.Client
	sessionStore session.Store
	stateCache   cache.Cache[string]
	router       chi.Router
	auth         *Authenticator
	adapter      *adapter.Adapter
	cookies      *cookie.Manager
	sessions     *session.Manager
	cookieOpts   []cookie.Option
	closers      []closer
	routes       []route
	registered   []provider.ID
	baseURL      string
	logoutURL    string
	logoutAfter  string
	sessionTTL   time.Duration
	stateTTL     time.Duration

	disableSession bool
	returnRaw      bool
}

// NewManager builds a manager with the built-in providers unless
// WithRegistry says otherwise. Call RegisterAll to bind providers.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		registry:    provider.DefaultRegistry(),
		rules:       provider.DefaultRules(),
		normalizer:  profile.New(),
		onAuth:      ProfileAuth,
		logger:      logger.NewNope(),
		baseURL:     defaultBaseURL,
		logoutURL:   defaultLogoutURL,
		logoutAfter: defaultLogoutAfter,
		sessionTTL:  defaultSessionTTL,
		stateTTL:    defaultStateTTL,
	}
	for _, opt := range opts {
		opt(m)
	}

	cookies, err := cookie.New(append([]cookie.Option{cookie.WithSecret(cookie.RandomSecret())}, m.cookieOpts...)...)
	if err != nil {
		return nil, err
	}
	m.cookies = cookies

	if m.stateCache == nil {
		c := cache.NewMemory[string](cache.MemoryConfig{DefaultTTL: m.stateTTL, CleanupInterval: janitorInterval})
		m.stateCache = c
		m.closers = append(m.closers, c)
	}

	if !m.disableSession {
		if m.sessionStore == nil {
			c := cache.NewMemory[session.Session](cache.MemoryConfig{DefaultTTL: m.sessionTTL, CleanupInterval: janitorInterval})
			m.sessionStore = session.NewCacheStore(c)
			m.closers = append(m.closers, c)
		}
		m.sessions = session.NewManager(m.sessionStore, m.cookies, m.sessionTTL)
	}

	m.adapter = adapter.New(m.baseURL, m.rules)
	m.auth = NewAuthenticator(m.cookies, m.sessions, m.logger, m.metrics)
	m.router = chi.NewRouter()

	if !m.disableSession {
		m.bind(http.MethodGet, m.logoutURL, m.auth.Logout(m.logoutAfter))
	}
	return m, nil
}

// RegisterAll registers every provider in settings, in sorted ID order.
// A failing provider is logged and skipped; the errors of all failed
// providers are returned together once every provider was attempted.
func (m *Manager) RegisterAll(settings map[provider.ID]provider.Settings) error {
	var errs error
	for _, id := range slices.Sorted(maps.Keys(settings)) {
		errs = multierr.Append(errs, m.Register(id, settings[id]))
	}
	return errs
}

// Register binds one provider: GET URLs.Auth starts the login, GET and
// POST URLs.Callback complete it.
func (m *Manager) Register(id provider.ID, s provider.Settings) error {
	if err := m.register(id, s); err != nil {
		m.metrics.SetupFailed(string(id))
		m.logger.Error("provider setup failed",
			slog.String("provider", string(id)),
			slog.String("error", err.Error()),
		)
		return err
	}

	m.metrics.SetupSucceeded(string(id))
	m.logger.Info("provider registered",
		slog.String("provider", string(id)),
		slog.String("auth", s.URLs.Auth),
		slog.String("callback", s.URLs.Callback),
	)
	return nil
}

func (m *Manager) register(id provider.ID, s provider.Settings) error {
	if slices.Contains(m.registered, id) {
		return fmt.Errorf("%w: %q", ErrDuplicateProvider, id)
	}

	b, err := m.registry.Lookup(id)
	if err != nil {
		return err
	}

	cfg, err := m.adapter.Adapt(id, s)
	if err != nil {
		return err
	}

	name := b.FlowName(id)
	strategy, err := b.Factory(name, cfg, m.verifier(id, b.UniqueIDField), m.strategyOptions()...)
	if err != nil {
		return fmt.Errorf("%w (provider %q)", err, id)
	}
	m.auth.Use(strategy)

	m.bind(http.MethodGet, s.URLs.Auth, m.auth.Begin(name, BeginOptions{
		Params:          maps.Clone(s.AuthParameters),
		FailureRedirect: s.URLs.Fail,
	}))

	callback := m.auth.Callback(name, CallbackOptions{
		SuccessRedirect: s.URLs.Success,
		FailureRedirect: s.URLs.Fail,
		FailureFlash:    true,
		Session:         !m.disableSession,
	})
	m.bind(http.MethodGet, s.URLs.Callback, callback)
	// Apple posts the callback as a form.
	m.bind(http.MethodPost, s.URLs.Callback, callback)

	m.registered = append(m.registered, id)
	return nil
}

// verifier is the completion closure handed to the strategy.
func (m *Manager) verifier(id provider.ID, uniqueIDField string) oauth.VerifyFunc {
	return func(r *http.Request, accessToken, refreshToken string, raw oauth.RawProfile) (any, error) {
		info := AuthInfo{
			Profile:       raw.JSON,
			Raw:           raw,
			Provider:      id,
			UniqueIDField: uniqueIDField,
			AccessToken:   accessToken,
			RefreshToken:  refreshToken,
		}
		if !m.returnRaw {
			p, err := m.normalizer.Normalize(id, raw.JSON)
			if err != nil {
				return nil, err
			}
			info.Profile = p
		}

		user, err := m.onAuth(r, info)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrNoUser
		}
		return result{User: user, Provider: id, Subject: info.Subject()}, nil
	}
}

func (m *Manager) strategyOptions() []oauth.Option {
	opts := []oauth.Option{
		oauth.WithCookies(m.cookies),
		oauth.WithSecrets(m.stateCache),
		oauth.WithStateTTL(m.stateTTL),
		oauth.WithLogger(m.logger),
	}
	if m.httpClient != nil {
		opts = append(opts, oauth.WithHTTPClient(m.httpClient))
	}
	return opts
}

func (m *Manager) bind(method, pattern string, h http.HandlerFunc) {
	m.router.Method(method, pattern, h)
	m.routes = append(m.routes, route{method: method, pattern: pattern, handler: h})
}

// Providers returns the registered providers in registration order.
func (m *Manager) Providers() []provider.ID {
	return slices.Clone(m.registered)
}

// Handler returns a router serving the login and logout routes.
func (m *Manager) Handler() http.Handler {
	return m.router
}

// Routes binds the login and logout routes on r. Providers registered
// afterwards are not added.
func (m *Manager) Routes(r chi.Router) {
	for _, rt := range m.routes {
		r.Method(rt.method, rt.pattern, rt.handler)
	}
}

// CurrentUser returns the session of the logged-in user.
func (m *Manager) CurrentUser(r *http.Request) (*session.Session, error) {
	if m.sessions == nil {
		return nil, ErrSessionsDisabled
	}
	return m.sessions.Current(r)
}

// Flash pops the message flashed by a failed login.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request) (cookie.Flash, error) {
	return m.cookies.PopFlash(w, r)
}

// Close releases the caches the manager created itself.
func (m *Manager) Close() error {
	var errs error
	for _, c := range m.closers {
		errs = multierr.Append(errs, c.Close())
	}
	return errs
}
