package dispatcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type cascadeMetrics struct {
	clauseTotal    *prometheus.CounterVec
	unhandledTotal prometheus.Counter
}

func newCascadeMetrics(reg prometheus.Registerer) *cascadeMetrics {
	factory := promauto.With(reg)
	return &cascadeMetrics{
		clauseTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gradcheck",
				Name:      "cascade_clause_total",
				Help:      "Total number of payloads handled per cascade clause",
			},
			[]string{"clause", "kind"},
		),
		unhandledTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "gradcheck",
				Name:      "cascade_unhandled_total",
				Help:      "Total number of payloads no cascade clause accepted",
			},
		),
	}
}
