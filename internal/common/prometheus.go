package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	EngagementMutationsTotal   = "engagement_mutations_total"
	EngagementConflictsTotal   = "engagement_conflicts_total"
	StoriesPurgedTotal         = "stories_purged_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		EngagementMutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: EngagementMutationsTotal,
			Help: "Count of committed engagement mutations",
		}, []string{"kind", "action"}),
		EngagementConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: EngagementConflictsTotal,
			Help: "Count of engagement transactions aborted by a write conflict",
		}, []string{"kind"}),
		StoriesPurgedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: StoriesPurgedTotal,
			Help: "Count of expired stories removed by the purge job",
		}, []string{}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
