package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors recorded by the web tier and the worker.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	gateDecisions   *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	tasks           *prometheus.CounterVec
}

// New registers the collectors on reg. A nil registerer yields a no-op value.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	gateDecisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hotelhub_gate_decisions_total",
		Help: "Session gate decisions by outcome.",
	}, []string{"outcome"})
	backendDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hotelhub_backend_request_duration_seconds",
		Help:    "Duration of REST backend calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "status"})
	tasks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hotelhub_tasks_total",
		Help: "Background tasks handled by type and result.",
	}, []string{"type", "result"})
	reg.MustRegister(gateDecisions, backendDuration, tasks)

	return &Metrics{
		gateDecisions:   gateDecisions,
		backendDuration: backendDuration,
		tasks:           tasks,
	}
}

func (m *Metrics) ObserveGateDecision(outcome string) {
	if m == nil || m.gateDecisions == nil {
		return
	}
	m.gateDecisions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *Metrics) ObserveBackendCall(op string, status string, d time.Duration) {
	if m == nil || m.backendDuration == nil {
		return
	}
	m.backendDuration.WithLabelValues(normalizeLabel(op), normalizeLabel(status)).Observe(d.Seconds())
}

func (m *Metrics) IncTask(taskType string, result string) {
	if m == nil || m.tasks == nil {
		return
	}
	m.tasks.WithLabelValues(normalizeLabel(taskType), normalizeLabel(result)).Inc()
}

func normalizeLabel(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" {
		return "unknown"
	}
	return v
}
