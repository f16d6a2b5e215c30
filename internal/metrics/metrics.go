package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffeeshop_sales_completed_total",
		Help: "Number of completed sales.",
	})

	RevenueRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffeeshop_revenue_recorded_total",
		Help: "Revenue recorded through completed sales, in currency units.",
	})

	RewardsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffeeshop_loyalty_rewards_issued_total",
		Help: "Loyalty rewards issued at checkout.",
	})
)
