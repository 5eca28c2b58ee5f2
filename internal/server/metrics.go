package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_mutations_total",
		Help: "Ledger mutations by operation and outcome.",
	}, []string{"operation", "status"})

	balanceComputationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_balance_computations_total",
		Help: "Number of balance recomputations served.",
	})

	rateFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_rate_fallbacks_total",
		Help: "Rate requests answered with the fallback rate.",
	})
)

func observeMutation(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	mutationsTotal.WithLabelValues(operation, status).Inc()
}
