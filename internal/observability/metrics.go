// Package observability provides Prometheus metrics for the scoring engine.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the scoring engine.
type Metrics struct {
	RunsTotal       *prometheus.CounterVec // labels: outcome={success,error}
	RunDuration     prometheus.Histogram
	EngineRunning   prometheus.Gauge
	StationsScored  prometheus.Counter
	StationsUnknown prometheus.Counter
	Clamped         prometheus.Counter
	UnknownColumns  *prometheus.CounterVec // labels: pollutant
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.EngineRunning,
		m.StationsScored,
		m.StationsUnknown,
		m.Clamped,
		m.UnknownColumns,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airscore",
			Name:      "scoring_runs_total",
			Help:      "Completed scoring runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "airscore",
			Name:      "scoring_run_duration_seconds",
			Help:      "Duration of a complete load-score-store cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EngineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "airscore",
			Name:      "engine_running",
			Help:      "1 while a scoring run is in progress, 0 otherwise.",
		}),
		StationsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airscore",
			Name:      "stations_scored_total",
			Help:      "Stations scored with a non-null overall AQI.",
		}),
		StationsUnknown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airscore",
			Name:      "stations_unknown_total",
			Help:      "Stations with no usable measurements.",
		}),
		Clamped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airscore",
			Name:      "concentrations_clamped_total",
			Help:      "Concentrations outside configured breakpoints, clamped.",
		}),
		UnknownColumns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airscore",
			Name:      "unknown_pollutant_columns_total",
			Help:      "Skipped concentrations for pollutants not in the breakpoint table.",
		}, []string{"pollutant"}),
	}
}
