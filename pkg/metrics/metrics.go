package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CatalogRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Outbound requests to the product catalog service",
		},
		[]string{"endpoint", "outcome"}, // endpoint: product|health; outcome: ok|not_found|error
	)
	OrderOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_operations_total",
			Help: "Order operations handled by the service layer",
		},
		[]string{"op", "outcome"}, // op: create|get|list|update|cancel
	)
	OrderEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_published_total",
			Help: "Order lifecycle events published to the broker",
		},
		[]string{"topic", "outcome"},
	)
)

var (
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_store_operations_total",
			Help: "Order store operations",
		},
		[]string{"op"}, // hit|miss|put|delete
	)
	StoreSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_store_size",
			Help: "Number of orders currently in the store",
		},
	)
)

func MustRegister() {
	prometheus.MustRegister(CatalogRequests, OrderOps, OrderEventsPublished, StoreOps, StoreSize)
}
