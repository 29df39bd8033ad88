package internal_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/internal"
)

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	hookRan := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- internal.Serve(internal.LivenessHandler(),
			internal.Listener(ln),
			internal.WithContext(ctx),
			internal.ShutdownTimeout(time.Second),
			internal.ShutdownHook(func(context.Context) error {
				close(hookRan)
				return nil
			}),
		)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	<-hookRan
}

func TestServe_HookError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hookErr := errors.New("close failed")
	err = internal.Serve(http.NotFoundHandler(),
		internal.Listener(ln),
		internal.WithContext(ctx),
		internal.ShutdownHook(func(context.Context) error { return hookErr }),
	)
	require.ErrorIs(t, err, hookErr)
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	checks := internal.HealthChecks{
		"redis": func(context.Context) error { return nil },
	}
	w := httptest.NewRecorder()
	internal.ReadinessHandler(checks, nil)(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())

	checks["store"] = func(context.Context) error { return errors.New("down") }
	r := httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil)
	w = httptest.NewRecorder()
	internal.ReadinessHandler(checks, nil)(w, r)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.JSONEq(t, `{"status":"unhealthy","checks":{"redis":{"status":"healthy"},"store":{"status":"unhealthy","error":"down"}}}`, w.Body.String())
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	internal.LivenessHandler()(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}
