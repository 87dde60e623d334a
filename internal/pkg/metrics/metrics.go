package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric label values for job and resync outcomes.
const (
	ResultOK         = "ok"
	ResultError      = "error"
	ResultDeadLetter = "dead_letter"
)

// WorkerMetrics exports propagation-worker counters to Prometheus.
type WorkerMetrics struct {
	jobsTotal    *prometheus.CounterVec
	resyncsTotal *prometheus.CounterVec
}

// NewWorkerMetrics registers the worker collectors against reg. Registration
// tolerates a collector already being present, so tests and restarts can
// share the default registerer.
func NewWorkerMetrics(namespace string, reg prometheus.Registerer) (*WorkerMetrics, error) {
	if namespace == "" {
		namespace = "bundle_propagation"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &WorkerMetrics{
		jobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Count of propagation jobs by final result.",
		}, []string{"result"}),
		resyncsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_resyncs_total",
			Help:      "Count of per-purchase content resync attempts by result.",
		}, []string{"result"}),
	}

	var err error
	if m.jobsTotal, err = registerCounterVec(reg, m.jobsTotal); err != nil {
		return nil, err
	}
	if m.resyncsTotal, err = registerCounterVec(reg, m.resyncsTotal); err != nil {
		return nil, err
	}
	return m, nil
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register worker counter: %w", err)
	}
	return c, nil
}

// ObserveJob records a finished propagation job.
func (m *WorkerMetrics) ObserveJob(result string) {
	m.jobsTotal.WithLabelValues(result).Inc()
}

// ObserveResync records one per-purchase resync attempt.
func (m *WorkerMetrics) ObserveResync(result string) {
	m.resyncsTotal.WithLabelValues(result).Inc()
}
