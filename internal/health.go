package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	healthTimeout = 5 * time.Second

	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// CheckFunc reports whether a dependency is usable. redis.Healthcheck
// returns one.
type CheckFunc func(ctx context.Context) error

// HealthChecks maps check names to checks.
type HealthChecks map[string]CheckFunc

type healthReport struct {
	Checks map[string]checkResult `json:"checks,omitempty"`
	Status string                 `json:"status"`
}

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// LivenessHandler always responds OK.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, r, http.StatusOK, healthReport{Status: statusHealthy})
	}
}

// ReadinessHandler runs checks in parallel and responds 503 when any fails.
// Clients asking for JSON (Accept header or ?format=json) get per-check results.
func ReadinessHandler(checks HealthChecks, log *slog.Logger) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		report := runChecks(r.Context(), checks, log)
		status := http.StatusOK
		if report.Status == statusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, r, status, report)
	}
}

func runChecks(ctx context.Context, checks HealthChecks, log *slog.Logger) healthReport {
	report := healthReport{Status: statusHealthy}
	if len(checks) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	report.Checks = make(map[string]checkResult, len(checks))
	for name, check := range checks {
		wg.Go(func() {
			res := checkResult{Status: statusHealthy}
			if err := check(ctx); err != nil {
				res = checkResult{Status: statusUnhealthy, Error: err.Error()}
				log.WarnContext(ctx, "health check failed", slog.String("check", name), slog.String("error", err.Error()))
			}

			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = res
			if res.Status == statusUnhealthy {
				report.Status = statusUnhealthy
			}
		})
	}
	wg.Wait()
	return report
}

func writeHealth(w http.ResponseWriter, r *http.Request, status int, report healthReport) {
	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(http.StatusText(status)))
}
