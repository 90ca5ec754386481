package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of order requests rejected before persisting",
	}, []string{"reason"})

	OrderTotalMismatchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_total_mismatch_total",
		Help: "Orders whose declared total differs from the sum of their items",
	})

	OrderStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Total number of order status updates by target status",
	}, []string{"status"})

	OrderValueMinor = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_value_minor_units",
		Help:    "Declared order totals in currency minor units",
		Buckets: prometheus.ExponentialBuckets(100, 2, 12),
	})

	AuthAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_attempts_total",
		Help: "Total number of register and login attempts",
	}, []string{"action", "result"})

	PasswordHashLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "password_hash_latency_seconds",
		Help:    "Latency of password hashing and verification",
		Buckets: prometheus.DefBuckets,
	})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Total number of domain events published",
	}, []string{"type", "result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
