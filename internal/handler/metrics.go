package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medshop",
			Subsystem: "checkout",
			Name:      "orders_created_total",
			Help:      "Total number of orders created via checkout",
		},
	)

	checkoutsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medshop",
			Subsystem: "checkout",
			Name:      "failed_total",
			Help:      "Total number of failed checkout attempts",
		},
	)

	checkoutDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "medshop",
			Subsystem: "checkout",
			Name:      "duration_seconds",
			Help:      "Histogram of checkout durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	statusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medshop",
			Subsystem: "orders",
			Name:      "status_updates_total",
			Help:      "Total number of order status updates by resulting status",
		},
		[]string{"status"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		ordersCreated,
		checkoutsFailed,
		checkoutDuration,
		statusUpdates,
	)
}
