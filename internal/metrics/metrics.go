// Package metrics exposes Prometheus instruments for schedule generation and
// the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mortgage"

// Metrics holds the registry and the calculator's instruments.
type Metrics struct {
	registry           *prometheus.Registry
	schedules          *prometheus.CounterVec
	schedulePayments   *prometheus.HistogramVec
	scheduleDuration   *prometheus.HistogramVec
	requests           *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	scenariosPersisted prometheus.Gauge
}

// New registers the calculator instruments on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		schedules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedules_generated_total",
			Help:      "Amortization schedules generated, by payment frequency.",
		}, []string{"frequency"}),
		schedulePayments: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_payments",
			Help:      "Number of payments in generated schedules.",
			Buckets:   []float64{12, 60, 120, 180, 240, 300, 360, 520, 780},
		}, []string{"frequency"}),
		scheduleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_generation_seconds",
			Help:      "Time spent generating a schedule.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"frequency"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		scenariosPersisted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "saved_scenarios",
			Help:      "Scenarios currently held by the scenario store.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.schedules,
		m.schedulePayments,
		m.scheduleDuration,
		m.requests,
		m.requestDuration,
		m.scenariosPersisted,
	)
	return m
}

// ObserveSchedule records one generated schedule. Scenario names are client
// supplied, so they are not used as a label.
func (m *Metrics) ObserveSchedule(_ string, frequency mortgage.Frequency, payments int, elapsed time.Duration) {
	label := string(frequency)
	m.schedules.WithLabelValues(label).Inc()
	m.schedulePayments.WithLabelValues(label).Observe(float64(payments))
	m.scheduleDuration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// SetSavedScenarios records the size of the scenario store.
func (m *Metrics) SetSavedScenarios(n int) {
	m.scenariosPersisted.Set(float64(n))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
