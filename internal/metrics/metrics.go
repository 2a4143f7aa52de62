// Package metrics exposes Prometheus counters for prompt activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors the input pipeline updates.
type Metrics struct {
	registry *prometheus.Registry

	Presents *prometheus.CounterVec
	Chains   *prometheus.CounterVec
	Fallback *prometheus.CounterVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Presents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clanker_input_presents_total",
				Help: "Prompts presented, by mechanism and outcome.",
			},
			[]string{"mechanism", "outcome"},
		),
		Chains: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clanker_input_chains_total",
				Help: "Question chains run, by result.",
			},
			[]string{"result"},
		),
		Fallback: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clanker_input_fallbacks_total",
				Help: "Mechanisms skipped or abandoned in favour of the next one.",
			},
			[]string{"mechanism", "reason"},
		),
	}
	m.registry.MustRegister(m.Presents, m.Chains, m.Fallback)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObservePresent counts one present call.
func (m *Metrics) ObservePresent(mechanism, outcome string) {
	if m == nil {
		return
	}
	m.Presents.WithLabelValues(mechanism, outcome).Inc()
}

// ObserveChain counts one finished chain.
func (m *Metrics) ObserveChain(result string) {
	if m == nil {
		return
	}
	m.Chains.WithLabelValues(result).Inc()
}

// ObserveFallback counts a mechanism passed over.
func (m *Metrics) ObserveFallback(mechanism, reason string) {
	if m == nil {
		return
	}
	m.Fallback.WithLabelValues(mechanism, reason).Inc()
}
