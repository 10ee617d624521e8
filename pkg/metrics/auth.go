package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuthMetrics records the outcome and latency of auth operations.
type AuthMetrics struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewAuthMetrics registers the auth metrics on the provided registerer.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auth_operation_duration_seconds",
		Help:    "Duration of auth operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_operations_total",
		Help: "Auth operations by outcome. Failures carry the error code.",
	}, []string{"operation", "outcome", "code"})
	reg.MustRegister(duration, total)
	return &AuthMetrics{
		duration: duration,
		total:    total,
	}
}

// Observe records one finished operation. code is empty on success.
func (a *AuthMetrics) Observe(operation string, elapsed time.Duration, code string) {
	if a == nil || a.total == nil {
		return
	}
	operation = normalizeLabel(operation)
	outcome := OutcomeSuccess
	if code != "" {
		outcome = OutcomeFailure
	}
	a.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	a.total.WithLabelValues(operation, outcome, code).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
