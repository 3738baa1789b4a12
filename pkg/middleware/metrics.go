package middleware

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/jsonedit/internal/errors"
	"github.com/vango-dev/jsonedit/pkg/server"
	"github.com/vango-dev/jsonedit/pkg/value"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "jsonedit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "jsonedit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for one server.
type Metrics struct {
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	eventErrors    *prometheus.CounterVec
	activeSessions prometheus.Gauge
	commitsTotal   *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors. Registering twice on
// the same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of editor events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of event processing errors",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "error_type"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of mounted editor sessions",
			ConstLabels: config.ConstLabels,
		}),

		commitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commits_total",
			Help:        "Total number of committed root values",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),
	}
}

// Prometheus creates metrics on the configured registry and returns their
// dispatch middleware.
func Prometheus(opts ...MetricsOption) server.Middleware {
	return NewMetrics(opts...).Middleware()
}

// Middleware returns dispatch middleware that counts and times events.
func (m *Metrics) Middleware() server.Middleware {
	return func(e *server.Event, next func(*server.Event) error) error {
		start := time.Now()
		err := next(e)
		m.eventDuration.WithLabelValues(e.Type).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.eventErrors.WithLabelValues(e.Type, categorizeError(err)).Inc()
		}
		m.eventsTotal.WithLabelValues(e.Type, status).Inc()
		return err
	}
}

// SessionCreated records a new session. It matches
// server.Config.OnSessionCreate.
func (m *Metrics) SessionCreated(*server.Session) {
	m.activeSessions.Inc()
}

// SessionClosed records a closed session. It matches
// server.Config.OnSessionClose.
func (m *Metrics) SessionClosed(*server.Session) {
	m.activeSessions.Dec()
}

// CountCommits wraps a commit callback and counts its outcomes.
func (m *Metrics) CountCommits(fn func(ctx context.Context, v value.Value) error) func(ctx context.Context, v value.Value) error {
	return func(ctx context.Context, v value.Value) error {
		var err error
		if fn != nil {
			err = fn(ctx, v)
		}
		status := "success"
		if err != nil {
			status = "error"
		}
		m.commitsTotal.WithLabelValues(status).Inc()
		return err
	}
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	var herr *server.HandlerError
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.HasCode(err, "E009"):
		return "not_found"
	case stderrors.As(err, &herr):
		return "panic"
	case errors.HasCode(err, "E003"), errors.HasCode(err, "E020"):
		return "validation"
	default:
		return "internal"
	}
}
