package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the core engine operations.
type Metrics struct {
	OperationAttempts  *prometheus.CounterVec
	OperationFailures  *prometheus.CounterVec
	OperationDuration  *prometheus.HistogramVec
	ChestAllocations   prometheus.Counter
	RankingRecomputes  prometheus.Counter
	PointsUpserts      prometheus.Counter
	AllocationConflict prometheus.Counter
}

// New registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festrack",
			Name:      "operation_attempts_total",
			Help:      "Number of service operation attempts.",
		}, []string{"operation"}),
		OperationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festrack",
			Name:      "operation_failures_total",
			Help:      "Number of failed service operations.",
		}, []string{"operation"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "festrack",
			Name:      "operation_duration_seconds",
			Help:      "Duration of service operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		ChestAllocations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "festrack",
			Name:      "chest_allocations_total",
			Help:      "Number of chest numbers allocated.",
		}),
		RankingRecomputes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "festrack",
			Name:      "ranking_recomputes_total",
			Help:      "Number of full program ranking recomputations.",
		}),
		PointsUpserts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "festrack",
			Name:      "points_upserts_total",
			Help:      "Number of points record upserts.",
		}),
		AllocationConflict: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "festrack",
			Name:      "allocation_conflicts_total",
			Help:      "Number of chest/result number allocation conflicts retried.",
		}),
	}
}

// NewNop returns metrics bound to a throwaway registry, for tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
