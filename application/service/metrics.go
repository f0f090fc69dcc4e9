package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chickenrescue_solve_duration_seconds",
		Help:    "Time to compute the maximum protected chickens",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"strategy"})

	solvePositions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chickenrescue_solve_positions",
		Help:    "Number of chicken positions per solve",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
	})

	bossVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chickenrescue_boss_verdicts_total",
		Help: "Boss behaviour verdicts by outcome",
	}, []string{"verdict"})
)
