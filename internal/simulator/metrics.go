package simulator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	simulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sponsorscope_simulations_total",
		Help: "Completed simulation runs by outcome.",
	}, []string{"outcome"})

	stageFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sponsorscope_stage_fallbacks_total",
		Help: "Analysis stages that fell back to neutral scores.",
	}, []string{"stage"})

	comparisonEntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sponsorscope_comparison_entries_total",
		Help: "Weight configurations evaluated by compare-weights requests.",
	})

	simulationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sponsorscope_simulation_duration_seconds",
		Help:    "Wall time of full simulation runs.",
		Buckets: prometheus.DefBuckets,
	})
)
