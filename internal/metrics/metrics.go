// Package metrics defines the Prometheus collectors exported by Jobtune.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtune_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobtune_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	ATSScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobtune_ats_score",
			Help:    "Distribution of computed ATS scores",
			Buckets: prometheus.LinearBuckets(65, 5, 7),
		},
	)

	JobMatchesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobtune_job_matches_returned",
			Help:    "Number of job matches returned per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	JobRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtune_job_refresh_total",
			Help: "Job dataset date refresh runs by result",
		},
		[]string{"result"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtune_cache_lookups_total",
			Help: "Match cache lookups by tier and result",
		},
		[]string{"tier", "result"},
	)
)

// Handler serves the default Prometheus registry
func Handler() http.Handler {
	return promhttp.Handler()
}
