// Package prometheus records verdict and lookup metrics with client_golang.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.Metrics = (*Metrics)(nil)

const namespace = "chainforensix"

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	verdicts       *prometheus.CounterVec
	lookups        *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.verdicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verdicts_total",
		Help:      "Verification verdicts by outcome",
	}, []string{"verdict"})
	m.lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Evidence lookups by kind and outcome",
	}, []string{"kind", "outcome"})
	m.lookupDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "lookup_duration_seconds",
		Help:      "Time spent resolving evidence, including retries",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	m.registry.MustRegister(m.verdicts, m.lookups, m.lookupDuration)
	return m
}

// ObserveVerdict counts a verdict.
func (m *Metrics) ObserveVerdict(v domain.Verdict) {
	m.verdicts.WithLabelValues(v.String()).Inc()
}

// ObserveLookup counts a lookup and records its latency.
func (m *Metrics) ObserveLookup(kind, outcome string, elapsed time.Duration) {
	m.lookups.WithLabelValues(kind, outcome).Inc()
	m.lookupDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
