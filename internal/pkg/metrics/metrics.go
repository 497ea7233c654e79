// Package metrics provides Prometheus instrumentation for candidate ranking,
// notifications and background jobs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RankTotal counts ranking runs, labeled by roster: "mentors" or "substitutes".
	RankTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tscs_rank_total",
		Help: "Total number of candidate rankings computed",
	}, []string{"roster"})

	// SuggestionsTotal counts rankings that surfaced a best match.
	SuggestionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tscs_suggestions_total",
		Help: "Total number of rankings that produced a suggested best match",
	}, []string{"roster"})

	// RankDuration records ranking latency in seconds.
	RankDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tscs_rank_duration_seconds",
		Help:    "Candidate ranking latency in seconds",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	}, []string{"roster"})

	// AssignmentsTotal counts confirmed assignments, labeled by kind: "mentor" or "substitute".
	AssignmentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tscs_assignments_total",
		Help: "Total number of manually confirmed assignments",
	}, []string{"kind"})

	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tscs_notifications_total",
		Help: "Total number of notifications created",
	}, []string{"type"})

	// StreamSubscribers tracks open server-sent event streams.
	StreamSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tscs_stream_subscribers",
		Help: "Number of open notification streams",
	})

	// StreamEventsDropped counts events skipped because a subscriber buffer was full.
	StreamEventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tscs_stream_events_dropped_total",
		Help: "Total number of stream events dropped for slow subscribers",
	})

	// JobRunsTotal counts scheduled job executions, labeled by job and result: "ok" or "error".
	JobRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tscs_job_runs_total",
		Help: "Total number of scheduled job runs",
	}, []string{"job", "result"})
)

func init() {
	prometheus.MustRegister(
		RankTotal,
		SuggestionsTotal,
		RankDuration,
		AssignmentsTotal,
		NotificationsTotal,
		StreamSubscribers,
		StreamEventsDropped,
		JobRunsTotal,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
