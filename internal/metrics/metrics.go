// Package metrics holds the process-wide Prometheus collectors. Only the
// contended paths are instrumented.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StockReservations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "techstore",
		Name:      "stock_reservations_total",
		Help:      "Stock reservation attempts by outcome.",
	}, []string{"outcome"})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "techstore",
		Name:      "orders_placed_total",
		Help:      "Orders committed through the order ledger.",
	})

	Checkouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "techstore",
		Name:      "checkouts_total",
		Help:      "Composed checkout attempts by outcome.",
	}, []string{"outcome"})
)
