package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	AuthRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"service", "result"},
	)

	AuthLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts by method (password, google, verify).",
		},
		[]string{"service", "method", "result"},
	)

	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of session tokens issued or refreshed.",
		},
		[]string{"service", "flow", "result"},
	)

	EmailsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total number of outgoing emails by template.",
		},
		[]string{"service", "template", "result"},
	)

	MediaUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Total number of media uploads by preset.",
		},
		[]string{"service", "preset", "result"},
	)

	MediaCleanupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_cleanups_total",
			Help: "Total number of best-effort remote media deletions.",
		},
		[]string{"service", "result"},
	)
)

var registerOnce sync.Once

// MustRegister curries the service label and registers every collector with
// the default registry. The collectors are unusable before it runs; later
// calls are no-ops.
func MustRegister(serviceName string) {
	registerOnce.Do(func() { mustRegister(serviceName) })
}

func mustRegister(serviceName string) {
	labels := prometheus.Labels{"service": serviceName}
	HTTPRequestsTotal = HTTPRequestsTotal.MustCurryWith(labels)
	HTTPRequestDurationSeconds = HTTPRequestDurationSeconds.MustCurryWith(labels).(*prometheus.HistogramVec)
	AuthRegistrationsTotal = AuthRegistrationsTotal.MustCurryWith(labels)
	AuthLoginsTotal = AuthLoginsTotal.MustCurryWith(labels)
	TokensIssuedTotal = TokensIssuedTotal.MustCurryWith(labels)
	EmailsSentTotal = EmailsSentTotal.MustCurryWith(labels)
	MediaUploadsTotal = MediaUploadsTotal.MustCurryWith(labels)
	MediaCleanupsTotal = MediaCleanupsTotal.MustCurryWith(labels)

	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		AuthRegistrationsTotal,
		AuthLoginsTotal,
		TokensIssuedTotal,
		EmailsSentTotal,
		MediaUploadsTotal,
		MediaCleanupsTotal,
	)
}
