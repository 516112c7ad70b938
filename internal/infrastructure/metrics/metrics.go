// Package metrics holds the Prometheus collectors of the shop and the gin
// middleware recording HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts requests by method, route and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_rate_limited_total",
			Help: "Requests rejected by the rate limiter by route",
		},
		[]string{"route"},
	)
)

// Shop metrics
var (
	// OrdersCreatedTotal counts checkouts by order kind and payment method
	OrdersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Orders created by kind and payment method",
		},
		[]string{"kind", "payment_method"},
	)

	// OrderTransitionsTotal counts order status changes
	OrderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_transitions_total",
			Help: "Order status transitions by target status",
		},
		[]string{"status"},
	)

	// PaymentStartsTotal counts payment starts by provider and result
	PaymentStartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_payment_starts_total",
			Help: "Payment starts by provider and result",
		},
		[]string{"provider", "result"},
	)

	// PaymentNotificationsTotal counts processed provider notifications
	PaymentNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_payment_notifications_total",
			Help: "Provider notifications by provider and mapped status",
		},
		[]string{"provider", "status"},
	)

	// SettingsCacheTotal counts settings cache lookups by result
	SettingsCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_settings_cache_total",
			Help: "Shop settings cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)
)
