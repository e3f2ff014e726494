// Package metrics holds the engine's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "border_traffic_refresh_total",
		Help: "Refresh ticks by outcome.",
	}, []string{"outcome"})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "border_traffic_refresh_duration_seconds",
		Help:    "Duration of a full refresh of every route.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	SnapshotGeneration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "border_traffic_snapshot_generation",
		Help: "Generation number of the current-state snapshot.",
	})

	WaitTimeMinutes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "border_traffic_wait_time_minutes",
		Help: "Latest wait time per route.",
	}, []string{"crossing_point", "direction"})

	PeakAnalysisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "border_traffic_peak_analysis_total",
		Help: "Peak-time analysis runs by outcome.",
	}, []string{"outcome"})

	PeakPeriods = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "border_traffic_peak_periods",
		Help: "Peak periods identified by the latest analysis per route.",
	}, []string{"crossing_point", "direction"})

	Subscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "border_traffic_subscribers",
		Help: "Active fan-out subscribers.",
	})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "border_traffic_events_dropped_total",
		Help: "Events discarded from full subscriber queues.",
	})

	RelayPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "border_traffic_relay_published_total",
		Help: "Events forwarded by relays by relay and outcome.",
	}, []string{"relay", "outcome"})

	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "border_traffic_requests_total",
		Help: "API operations by operation and status code.",
	}, []string{"operation", "status"})
)
