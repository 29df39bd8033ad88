package middlewares_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialauth/middlewares"
	"github.com/dmitrymomot/socialauth/pkg/logger"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates an ID and stores it in the context", func(t *testing.T) {
		t.Parallel()

		var seen string
		h := middlewares.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = logger.RequestID(r.Context())
		}))

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, seen)
		require.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("keeps an upstream ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := serve(middlewares.RequestID()(ok), req)
		require.Equal(t, "corr-1", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and header", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
			middlewares.WithRequestIDHeaders("X-Trace"),
		)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "ignored")
		rec := serve(mw(ok), req)
		require.Equal(t, "fixed", rec.Header().Get("X-Trace"))
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	t.Run("logs and responds 500", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))
		h := middlewares.Recover(middlewares.WithRecoverLogger(log))(boom)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, buf.String(), `"panic":"boom"`)
		require.Contains(t, buf.String(), `"stack"`)
	})

	t.Run("stack can be disabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))
		h := middlewares.Recover(
			middlewares.WithRecoverLogger(log),
			middlewares.WithRecoverDisablePrintStack(),
		)(boom)

		serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotContains(t, buf.String(), `"stack"`)
	})

	t.Run("passes through", func(t *testing.T) {
		t.Parallel()

		rec := serve(middlewares.Recover()(ok), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("abort handler is re-panicked", func(t *testing.T) {
		t.Parallel()

		h := middlewares.Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))
		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	var deadline time.Time
	var hasDeadline bool
	h := middlewares.Timeout(time.Minute)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		deadline, hasDeadline = r.Context().Deadline()
	}))
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, hasDeadline)
	require.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	var err error
	h = middlewares.Timeout(time.Millisecond)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		err = r.Context().Err()
	}))
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("wildcard", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/providers", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := serve(middlewares.CORS()(ok), req)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no origin", func(t *testing.T) {
		t.Parallel()

		rec := serve(middlewares.CORS()(ok), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("credentials echo the origin", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowOrigins("https://app.example.com"),
			middlewares.WithAllowCredentials(),
		)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := serve(mw(ok), req)
		require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

		req.Header.Set("Origin", "https://evil.example.com")
		rec = serve(mw(ok), req)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowOriginFunc(func(o string) bool { return strings.HasSuffix(o, ".example.com") }),
			middlewares.WithMaxAge(time.Hour),
		)
		req := httptest.NewRequest(http.MethodOptions, "/me", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := serve(mw(ok), req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) middlewares.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	serve(middlewares.Chain(ok, mark("a"), mark("b")), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b"}, order)
}
