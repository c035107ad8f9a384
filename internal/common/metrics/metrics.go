// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job-level metrics shared by every worker.
var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

// Scoring metrics recorded by the eligibility pipeline.
var (
	EligibilityChecks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eligibility_checks_total",
			Help: "Total number of profile-against-catalog eligibility checks",
		},
	)

	OpportunitiesEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eligibility_opportunities_evaluated_total",
			Help: "Total number of opportunities scored across all checks",
		},
	)

	EligibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eligibility_score",
			Help:    "Distribution of computed eligibility scores (0-100)",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)
