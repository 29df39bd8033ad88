package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/pkg/config"
	"github.com/dmitrymomot/socialauth/pkg/logger"
)

func cleanEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BASE_URL", "https://login.example.com")
	t.Setenv("PROVIDERS_FILE", "testdata/providers.yaml")
	t.Setenv("REDIS_URL", "")
	t.Setenv("COOKIE_SECRET", "")
	t.Setenv("CORS_ORIGINS", "")
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "--env-file", "testdata/missing.env"))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestProvidersCmd(t *testing.T) {
	cleanEnv(t)

	out := run(t, "providers")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Contains(t, lines[0], "PROVIDER")
	require.Regexp(t, `github\s+yes\s+yes\s+/auth/github\s+/auth/github/callback`, out)
	require.Regexp(t, `myspace\s+no\s+yes`, out)
	require.Regexp(t, `google\s+yes\s+no`, out)
}

func TestAdaptCmd(t *testing.T) {
	cleanEnv(t)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(run(t, "adapt", "twitter")), &cfg))
	require.Equal(t, "tw-key", cfg["consumerKey"])
	require.Equal(t, "********", cfg["consumerSecret"])
	require.Equal(t, "https://login.example.com/auth/twitter/callback", cfg["callbackURL"])
	require.Equal(t, "https://api.twitter.com/oauth/authorize", cfg["userAuthorizationURL"])
	require.NotContains(t, cfg, "clientID")

	require.NoError(t, json.Unmarshal([]byte(run(t, "adapt", "twitter", "--show-secrets")), &cfg))
	require.Equal(t, "tw-secret", cfg["consumerSecret"])

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"adapt", "google", "--env-file", "testdata/missing.env"})
	require.ErrorContains(t, cmd.Execute(), "google is not in")
}

func TestNewServer(t *testing.T) {
	cleanEnv(t)

	var cfg config.App
	require.NoError(t, config.Load(&cfg, "testdata/missing.env"))
	settings, err := config.LoadProviders(cfg.ProvidersFile)
	require.NoError(t, err)

	srv, err := newServer(context.Background(), cfg, settings, logger.NewNope())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.close(context.Background()) })

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		srv.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/providers")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"providers":["github","twitter"]}`, w.Body.String())
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = get("/auth/github")
	require.Equal(t, http.StatusFound, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), "https://github.com/login/oauth/authorize"))

	require.Equal(t, http.StatusUnauthorized, get("/me").Code)
	require.Equal(t, http.StatusOK, get("/health/live").Code)
	require.Equal(t, http.StatusOK, get("/health/ready").Code)

	w = get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `socialauth_provider_setups_total{provider="myspace",result="failed"} 1`)

	w = get("/logout")
	require.Equal(t, http.StatusFound, w.Code)
}

func TestNewServer_CORS(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CORS_ORIGINS", "https://app.example.com,https://admin.example.com")

	var cfg config.App
	require.NoError(t, config.Load(&cfg, "testdata/missing.env"))
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)

	srv, err := newServer(context.Background(), cfg, nil, logger.NewNope())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.close(context.Background()) })

	get := func(origin string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		srv.handler.ServeHTTP(w, r)
		return w
	}

	w := get("https://app.example.com")
	require.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = get("https://evil.example.net")
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestNewServer_CORSDisabledByDefault(t *testing.T) {
	cleanEnv(t)

	var cfg config.App
	require.NoError(t, config.Load(&cfg, "testdata/missing.env"))
	require.Empty(t, cfg.CORSOrigins)

	srv, err := newServer(context.Background(), cfg, nil, logger.NewNope())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.close(context.Background()) })

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, r)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
