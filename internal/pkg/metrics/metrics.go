// Package metrics declares the Prometheus collectors of the service.
// They are registered with the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_orders_created_total",
		Help: "Total number of orders successfully placed.",
	})

	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laundry_order_transitions_total",
		Help: "Total number of order status changes, by target status.",
	},
		[]string{"status"},
	)

	OtpVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laundry_otp_verifications_total",
		Help: "OTP verification attempts, by kind and outcome.",
	},
		[]string{"kind", "outcome"},
	)

	PromotionResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laundry_promotion_results_total",
		Help: "Promotion applications, by outcome (applied or the rejection reason).",
	},
		[]string{"result"},
	)

	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_outbox_published_total",
		Help: "Total number of outbox messages published to Kafka.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "laundry_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "laundry_http_request_duration_seconds",
		Help:    "HTTP request latency, by route and status code.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"route", "code"},
	)
)
