package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/socialauth"
	"github.com/dmitrymomot/socialauth/internal"
	"github.com/dmitrymomot/socialauth/middlewares"
	"github.com/dmitrymomot/socialauth/pkg/cache"
	"github.com/dmitrymomot/socialauth/pkg/config"
	"github.com/dmitrymomot/socialauth/pkg/cookie"
	"github.com/dmitrymomot/socialauth/pkg/logger"
	"github.com/dmitrymomot/socialauth/pkg/metrics"
	"github.com/dmitrymomot/socialauth/pkg/redis"
	"github.com/dmitrymomot/socialauth/pkg/session"
)

const requestTimeout = 30 * time.Second

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the login server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg config.App
			if err := config.Load(&cfg, *envFile); err != nil {
				return err
			}
			log := logger.New(cfg.Log, logger.RequestIDExtractor(), logger.ProviderExtractor())

			settings, err := config.LoadProviders(cfg.ProvidersFile)
			if err != nil {
				return err
			}

			srv, err := newServer(cmd.Context(), cfg, settings, log)
			if err != nil {
				return err
			}

			return internal.Serve(srv.handler,
				internal.WithContext(cmd.Context()),
				internal.Address(cfg.Addr),
				internal.ServerLogger(log),
				internal.ShutdownTimeout(cfg.ShutdownTimeout),
				internal.ShutdownHook(srv.close),
				internal.ShutdownHook(func(context.Context) error {
					sentry.Flush(2 * time.Second)
					return nil
				}),
			)
		},
	}
}

type server struct {
	handler http.Handler
	auth    *socialauth.Manager
	closers []func() error
}

// newServer wires the login routes, health checks and metrics.
// Providers that fail to register are logged and skipped.
func newServer(ctx context.Context, cfg config.App, settings map[socialauth.ProviderID]socialauth.Settings, log *slog.Logger) (*server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	srv := &server{}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cookieOpts := []cookie.Option{cookie.WithSecure(cfg.CookieSecure)}
	if cfg.CookieSecret != "" {
		cookieOpts = append(cookieOpts, cookie.WithSecret(cfg.CookieSecret))
	} else {
		log.Warn("COOKIE_SECRET is not set, logins will not survive a restart")
	}

	opts := []socialauth.Option{
		socialauth.WithBaseURL(cfg.BaseURL),
		socialauth.WithLogout(cfg.LogoutURL, cfg.LogoutAfter),
		socialauth.WithLogger(log),
		socialauth.WithMetrics(metrics.MustNew(reg)),
		socialauth.WithCookieOptions(cookieOpts...),
		socialauth.WithSessionTTL(cfg.SessionTTL),
		socialauth.WithStateTTL(cfg.StateTTL),
	}
	if cfg.DisableSession {
		opts = append(opts, socialauth.WithDisableSession())
	}
	if cfg.ReturnRaw {
		opts = append(opts, socialauth.WithReturnRaw())
	}

	checks := internal.HealthChecks{}
	if cfg.RedisURL != "" {
		client, err := redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
		if err != nil {
			return nil, err
		}
		srv.closers = append(srv.closers, client.Close)
		checks["redis"] = redis.Healthcheck(client)
		opts = append(opts,
			socialauth.WithStateCache(cache.NewRedis[string](client, nil, cache.RedisConfig{
				Prefix:     "socialauth:state",
				DefaultTTL: cfg.StateTTL,
			})),
			socialauth.WithSessionStore(session.NewCacheStore(cache.NewRedis[session.Session](client, nil, cache.RedisConfig{
				Prefix:     "socialauth:session",
				DefaultTTL: cfg.SessionTTL,
			}))),
		)
	}

	auth, err := socialauth.New(opts...)
	if err != nil {
		_ = srv.close(ctx)
		return nil, err
	}
	srv.auth = auth
	srv.closers = append([]func() error{auth.Close}, srv.closers...)

	if err := auth.RegisterAll(settings); err != nil {
		log.Warn("some providers were not registered", slog.String("error", err.Error()))
	}
	if len(auth.Providers()) == 0 {
		log.Warn("no provider is registered")
	}

	r := chi.NewRouter()
	r.Use(
		middlewares.RequestID(),
		middlewares.Recover(middlewares.WithRecoverLogger(log)),
		middlewares.Timeout(requestTimeout),
	)
	auth.Routes(r)
	r.Get("/health/live", internal.LivenessHandler())
	r.Get("/health/ready", internal.ReadinessHandler(checks, log))
	if cfg.MetricsPath != "" {
		r.Handle(cfg.MetricsPath, metrics.Handler(reg))
	}
	r.Group(func(r chi.Router) {
		// Only the configured origins may read the session with credentials.
		r.Use(middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.CORSOrigins...),
			middlewares.WithAllowCredentials(),
		))
		r.Get("/providers", srv.providers)
		r.Get("/me", srv.me)
	})
	r.Get("/", srv.me)

	srv.handler = r
	return srv, nil
}

func (s *server) close(context.Context) error {
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *server) providers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"providers": s.auth.Providers()})
}

// me reports the logged-in user and pops a pending flash message.
func (s *server) me(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{}
	if f, err := s.auth.Flash(w, r); err == nil {
		body["flash"] = f
	}

	sess, err := s.auth.CurrentUser(r)
	if err != nil {
		body["error"] = "not logged in"
		writeJSON(w, http.StatusUnauthorized, body)
		return
	}
	body["provider"] = sess.Provider
	body["subject"] = sess.Subject
	body["user"] = sess.User
	body["expires_at"] = sess.ExpiresAt
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
