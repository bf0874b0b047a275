package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_loads_total",
			Help: "Trip loads by outcome",
		},
		[]string{"outcome"},
	)

	loadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_fetch_duration_seconds",
			Help:    "Duration of the trip listing request, excluding the phase sequence",
			Buckets: prometheus.DefBuckets,
		},
	)

	tripsLoaded = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_trips_loaded",
			Help:    "Number of trips per successful load",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_sessions_active",
			Help: "Dashboard sessions currently held in memory",
		},
	)
)

func recordLoad(outcome string, seconds float64, count int) {
	loadsTotal.WithLabelValues(outcome).Inc()
	loadDuration.Observe(seconds)
	if outcome == "success" {
		tripsLoaded.Observe(float64(count))
	}
}
