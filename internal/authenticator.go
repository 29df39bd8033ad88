package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/socialauth/pkg/cookie"
	"github.com/dmitrymomot/socialauth/pkg/logger"
	"github.com/dmitrymomot/socialauth/pkg/metrics"
	"github.com/dmitrymomot/socialauth/pkg/oauth"
	"github.com/dmitrymomot/socialauth/pkg/session"
)

// FlashError is the flash type set on failed logins.
const FlashError = "error"

// BeginOptions configures the handler that starts a login.
type BeginOptions struct {
	// Params are extra authorization parameters such as scope.
	Params map[string]string
	// FailureRedirect is used when the handshake cannot be started.
	// Empty means a 502 response.
	FailureRedirect string
}

// CallbackOptions configures the handler that completes a login.
type CallbackOptions struct {
	SuccessRedirect string
	FailureRedirect string
	FailureFlash    bool
	Session         bool
}

// Authenticator runs the login flows of registered strategies.
// Strategies are added with Use during setup; Use must not race with serving.
type Authenticator struct {
	strategies map[string]oauth.Strategy
	cookies    *cookie.Manager
	sessions   *session.Manager
	logger     *slog.Logger
	metrics    *metrics.Collector
}

// NewAuthenticator creates a flow engine. sessions may be nil when sessions
// are disabled; metrics may be nil.
func NewAuthenticator(cookies *cookie.Manager, sessions *session.Manager, log *slog.Logger, m *metrics.Collector) *Authenticator {
	if log == nil {
		log = logger.NewNope()
	}
	return &Authenticator{
		strategies: make(map[string]oauth.Strategy),
		cookies:    cookies,
		sessions:   sessions,
		logger:     log,
		metrics:    m,
	}
}

// Use registers s under its name, replacing a strategy of the same name.
func (a *Authenticator) Use(s oauth.Strategy) {
	a.strategies[s.Name()] = s
}

// Strategy returns the strategy registered under name.
func (a *Authenticator) Strategy(name string) (oauth.Strategy, error) {
	s, ok := a.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Begin returns the handler that redirects the user to the provider.
func (a *Authenticator) Begin(name string, opts BeginOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithProvider(r.Context(), name)
		r = r.WithContext(ctx)

		s, err := a.Strategy(name)
		if err == nil {
			a.metrics.Challenge(name)
			err = a.guard(func() error { return s.Challenge(w, r, opts.Params) })
		}
		if err == nil {
			return
		}

		a.logger.WarnContext(ctx, "login start failed", slog.String("error", err.Error()))
		if opts.FailureRedirect == "" {
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
			return
		}
		a.flash(w, err)
		http.Redirect(w, r, opts.FailureRedirect, http.StatusFound)
	}
}

// Callback returns the handler that completes the login.
// Errors and panics never reach the client: they end in a redirect to
// FailureRedirect with an optional flash message.
func (a *Authenticator) Callback(name string, opts CallbackOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logger.WithProvider(r.Context(), name)
		r = r.WithContext(ctx)

		res, err := a.complete(w, r, name)
		if err == nil && opts.Session && a.sessions != nil {
			_, err = a.sessions.Login(w, r, string(res.Provider), res.Subject, res.User)
		}

		if err != nil {
			a.metrics.Login(name, false, start)
			a.logger.WarnContext(ctx, "login failed", slog.String("error", err.Error()))
			if opts.FailureFlash {
				a.flash(w, err)
			}
			http.Redirect(w, r, opts.FailureRedirect, http.StatusFound)
			return
		}

		a.metrics.Login(name, true, start)
		a.logger.InfoContext(ctx, "login succeeded", slog.String("subject", res.Subject))
		http.Redirect(w, r, opts.SuccessRedirect, http.StatusFound)
	}
}

// Logout returns the handler that ends the session and redirects to after.
func (a *Authenticator) Logout(after string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a.sessions != nil {
			if err := a.sessions.Logout(w, r); err != nil {
				a.logger.WarnContext(r.Context(), "logout failed", slog.String("error", err.Error()))
			}
		} else {
			a.cookies.Clear(w, session.CookieName)
		}
		http.Redirect(w, r, after, http.StatusFound)
	}
}

func (a *Authenticator) complete(w http.ResponseWriter, r *http.Request, name string) (res result, err error) {
	s, err := a.Strategy(name)
	if err != nil {
		return res, err
	}

	var user any
	err = a.guard(func() error {
		var cerr error
		user, cerr = s.Complete(w, r)
		return cerr
	})
	if err != nil {
		return res, err
	}

	switch u := user.(type) {
	case nil:
		return res, ErrNoUser
	case result:
		if u.User == nil {
			return res, ErrNoUser
		}
		return u, nil
	default:
		return result{User: u}, nil
	}
}

// guard converts a panic in fn into ErrPanic.
func (a *Authenticator) guard(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()
	return fn()
}

func (a *Authenticator) flash(w http.ResponseWriter, err error) {
	if ferr := a.cookies.SetFlash(w, cookie.Flash{Type: FlashError, Message: FailureMessage(err)}); ferr != nil {
		a.logger.Error("set flash failed", slog.String("error", ferr.Error()))
	}
}

// FailureMessage turns a login error into a message safe to show the user.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, oauth.ErrAccessDenied):
		return "Access was denied by the provider."
	case errors.Is(err, oauth.ErrStateMismatch), errors.Is(err, oauth.ErrMissingCode):
		return "The login request expired or was tampered with. Please try again."
	case errors.Is(err, ErrNoUser):
		return "No account is associated with this login."
	case errors.Is(err, oauth.ErrExchangeFailed), errors.Is(err, oauth.ErrFetchFailed),
		errors.Is(err, oauth.ErrRequestFailed), errors.Is(err, oauth.ErrDecodeFailed):
		return "The provider could not be reached. Please try again later."
	default:
		return "Authentication failed."
	}
}
