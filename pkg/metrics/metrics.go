// Package metrics exposes Prometheus counters for provider setup and login outcomes.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "socialauth"

// Collector records provider setup and login outcomes.
// All methods are safe on a nil *Collector.
type Collector struct {
	setups     *prometheus.CounterVec
	challenges *prometheus.CounterVec
	logins     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates a Collector and registers it with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	setups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_setups_total",
		Help:      "Provider registrations by result (registered|failed).",
	}, []string{"provider", "result"})
	challenges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenges_total",
		Help:      "Login flows started.",
	}, []string{"provider"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Completed callbacks by result (success|failure).",
	}, []string{"provider", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "callback_duration_seconds",
		Help:      "Callback handling latency including provider round trips.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"provider"})

	var (
		c   Collector
		err error
	)
	if c.setups, err = register(reg, setups); err != nil {
		return nil, err
	}
	if c.challenges, err = register(reg, challenges); err != nil {
		return nil, err
	}
	if c.logins, err = register(reg, logins); err != nil {
		return nil, err
	}
	if c.duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &c, nil
}

// register returns the already registered collector when an equal one exists.
func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	err := reg.Register(col)
	if err == nil {
		return col, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return col, err
}

// MustNew is New that panics on error.
func MustNew(reg prometheus.Registerer) *Collector {
	c, err := New(reg)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Collector) SetupSucceeded(provider string) {
	if c != nil {
		c.setups.WithLabelValues(provider, "registered").Inc()
	}
}

func (c *Collector) SetupFailed(provider string) {
	if c != nil {
		c.setups.WithLabelValues(provider, "failed").Inc()
	}
}

func (c *Collector) Challenge(provider string) {
	if c != nil {
		c.challenges.WithLabelValues(provider).Inc()
	}
}

// Login records a finished callback that started at start.
func (c *Collector) Login(provider string, ok bool, start time.Time) {
	if c == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	c.logins.WithLabelValues(provider, result).Inc()
	c.duration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// Handler serves the metrics in g. A nil g uses prometheus.DefaultGatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
