package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DecisionMetrics records outcomes of permission checks.
type DecisionMetrics struct {
	duration *prometheus.HistogramVec
	allowed  *prometheus.CounterVec
	denied   *prometheus.CounterVec
}

// NewDecisionMetrics registers the permission decision metrics on the provided registerer.
func NewDecisionMetrics(reg prometheus.Registerer) *DecisionMetrics {
	if reg == nil {
		return &DecisionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "permission_check_duration_seconds",
		Help:    "Duration of permission checks in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"role"})
	allowed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "permission_check_allowed",
		Help: "Permission checks that resulted in access being granted.",
	}, []string{"role"})
	denied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "permission_check_denied",
		Help: "Permission checks that resulted in access being denied.",
	}, []string{"reason"})
	reg.MustRegister(duration, allowed, denied)
	return &DecisionMetrics{
		duration: duration,
		allowed:  allowed,
		denied:   denied,
	}
}

// ObserveDuration records how long a permission check took for the given role.
func (d *DecisionMetrics) ObserveDuration(role string, duration time.Duration) {
	if d == nil || d.duration == nil {
		return
	}
	d.duration.WithLabelValues(normalizeLabel(role)).Observe(duration.Seconds())
}

// IncAllowed increments the allow counter for the given role.
func (d *DecisionMetrics) IncAllowed(role string) {
	if d == nil || d.allowed == nil {
		return
	}
	d.allowed.WithLabelValues(normalizeLabel(role)).Inc()
}

// IncDenied increments the deny counter for the given reason.
func (d *DecisionMetrics) IncDenied(reason string) {
	if d == nil || d.denied == nil {
		return
	}
	d.denied.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
