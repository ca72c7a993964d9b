// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	IntakeTotal     *prometheus.CounterVec // intake submissions by outcome
	AdvisorTotal    *prometheus.CounterVec // advisor replies by outcome
	AdvisorDuration prometheus.Histogram   // text generation latency
	PersistFailures prometheus.Counter     // failed collection writes

	registry *prometheus.Registry
}

func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.IntakeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netivim_intake_total",
			Help: "Intake submissions by outcome",
		},
		[]string{"outcome"}, // created, invalid, not_found, geocode_error
	)
	m.AdvisorTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netivim_advisor_replies_total",
			Help: "Advisor replies by outcome",
		},
		[]string{"outcome"}, // ok, empty, error
	)
	m.AdvisorDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "netivim_advisor_duration_seconds",
		Help:    "Time taken by the text generation service",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
	})
	m.PersistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "netivim_persist_failures_total",
		Help: "Failed writes of the school collection",
	})

	for _, c := range []prometheus.Collector{m.IntakeTotal, m.AdvisorTotal, m.AdvisorDuration, m.PersistFailures} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// RegisterGauge exposes a value read at scrape time.
func (m *Metrics) RegisterGauge(name, help string, fn func() float64) error {
	return m.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, fn))
}

func (m *Metrics) IntakeOutcome(outcome string) {
	m.IntakeTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AdvisorReply(outcome string, duration time.Duration) {
	m.AdvisorTotal.WithLabelValues(outcome).Inc()
	m.AdvisorDuration.Observe(duration.Seconds())
}

func (m *Metrics) PersistFailed() {
	m.PersistFailures.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
