package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type OrderMetrics struct {
	Placements       *prometheus.CounterVec
	PlacementSeconds prometheus.Histogram
}

func NewOrderMetrics() *OrderMetrics {
	placements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Subsystem: "orders",
		Name:      "placements_total",
		Help:      "Total number of order placement attempts.",
	}, []string{"outcome"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "shop",
		Subsystem: "orders",
		Name:      "placement_duration_seconds",
		Help:      "Order placement latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	prometheus.MustRegister(placements, latency)
	return &OrderMetrics{Placements: placements, PlacementSeconds: latency}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
