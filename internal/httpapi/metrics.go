package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "joblens_http_requests_total",
			Help: "HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)
	filterDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "joblens_filter_duration_seconds",
			Help:    "Time spent filtering and aggregating a posting snapshot",
			Buckets: prometheus.DefBuckets,
		},
	)
	jobsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "joblens_jobs_created_total",
			Help: "Postings inserted via the API or import",
		},
	)
	jobViews = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "joblens_job_views_total",
			Help: "Detail views served (view-counter increments)",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequests,
		filterDuration,
		jobsCreated,
		jobViews,
	)
}

func observeFilter(d time.Duration) {
	filterDuration.Observe(d.Seconds())
}

// Metrics counts requests per route family. Path segments that look like ids
// collapse to :id so the label set stays bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		httpRequests.WithLabelValues(routeLabel(r.URL.Path), r.Method, strconv.Itoa(sw.status)).Inc()
	})
}

func routeLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseInt(p, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
