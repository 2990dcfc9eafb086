package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersIngestedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_orders_ingested_total",
		Help: "Total number of orders accepted onto the live board.",
	})

	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_order_transitions_total",
		Help: "Total number of applied order status transitions.",
	},
		[]string{"to"},
	)

	AutoPromotionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_order_auto_promotions_total",
		Help: "Total number of orders promoted to ready by the periodic tick.",
	})

	MalformedPushEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_push_events_malformed_total",
		Help: "Total number of push payloads that required field normalization or were dropped.",
	})

	LiveOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "marketplace_live_orders",
		Help: "Current number of orders held by the lifecycle engine.",
	})
)
