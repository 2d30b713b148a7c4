package shopping

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics for shopping list builds.
type Metrics struct {
	buildsTotal       *prometheus.CounterVec
	buildDuration     prometheus.Histogram
	skippedMealsTotal prometheus.Counter
	issuesTotal       *prometheus.CounterVec
	entriesGauge      prometheus.Gauge
}

// NewMetrics creates shopping metrics and registers them with registry.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopping_list_builds_total",
				Help: "Total number of shopping list builds",
			},
			[]string{"status"}, // status: success, error, superseded
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shopping_list_build_duration_seconds",
				Help:    "Time taken to load and aggregate a shopping list",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),
		skippedMealsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "shopping_list_skipped_meals_total",
				Help: "Planned meals skipped because their recipe no longer exists",
			},
		),
		issuesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopping_list_issues_total",
				Help: "Soft errors reported while aggregating shopping lists",
			},
			[]string{"type"},
		),
		entriesGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "shopping_list_last_entries",
				Help: "Number of entries in the most recently built shopping list",
			},
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.buildsTotal.Describe(ch)
	m.buildDuration.Describe(ch)
	m.skippedMealsTotal.Describe(ch)
	m.issuesTotal.Describe(ch)
	m.entriesGauge.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.buildsTotal.Collect(ch)
	m.buildDuration.Collect(ch)
	m.skippedMealsTotal.Collect(ch)
	m.issuesTotal.Collect(ch)
	m.entriesGauge.Collect(ch)
}

// RecordBuild records the outcome of one build. A nil receiver records nothing.
func (m *Metrics) RecordBuild(status string, took time.Duration, res *Result) {
	if m == nil {
		return
	}
	m.buildsTotal.WithLabelValues(status).Inc()
	m.buildDuration.Observe(took.Seconds())
	if res == nil {
		return
	}

	m.skippedMealsTotal.Add(float64(res.Skipped))
	for _, issue := range res.Issues {
		var missing *MissingReferenceError
		var invalid *InvalidQuantityError
		switch {
		case errors.As(issue, &missing):
			m.issuesTotal.WithLabelValues("missing_" + missing.Kind).Inc()
		case errors.As(issue, &invalid):
			m.issuesTotal.WithLabelValues("invalid_" + invalid.Field).Inc()
		}
	}

	n := 0
	for _, g := range res.Groups {
		n += len(g.Entries)
	}
	m.entriesGauge.Set(float64(n))
}
