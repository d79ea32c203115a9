package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	registrationsTotal *prometheus.CounterVec
	approvalsTotal     *prometheus.CounterVec
	loginsTotal        *prometheus.CounterVec
	emailDispatchTotal *prometheus.CounterVec
	uploadsTotal       *prometheus.CounterVec
	uploadsRejected    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edupath_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edupath_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		registrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edupath_student_registrations_total",
			Help: "Student registration outcomes.",
		}, []string{"outcome"})

		approvalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edupath_student_approvals_total",
			Help: "Student approval outcomes.",
		}, []string{"outcome"})

		loginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edupath_logins_total",
			Help: "Login attempts by audience and outcome.",
		}, []string{"audience", "outcome"})

		emailDispatchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edupath_emails_total",
			Help: "Email dispatch outcomes by template.",
		}, []string{"template", "outcome"})

		uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edupath_uploads_total",
			Help: "Accepted uploads by detected content type.",
		}, []string{"content_type"})

		uploadsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edupath_uploads_rejected_total",
			Help: "Rejected uploads by reason.",
		}, []string{"reason"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			registrationsTotal,
			approvalsTotal,
			loginsTotal,
			emailDispatchTotal,
			uploadsTotal,
			uploadsRejected,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// StudentRegistrations exposes the registration counter.
func StudentRegistrations() *prometheus.CounterVec {
	RegisterMetrics()
	return registrationsTotal
}

// StudentApprovals exposes the approval counter.
func StudentApprovals() *prometheus.CounterVec {
	RegisterMetrics()
	return approvalsTotal
}

// Logins exposes the login counter.
func Logins() *prometheus.CounterVec {
	RegisterMetrics()
	return loginsTotal
}

// EmailDispatches exposes the email dispatch counter.
func EmailDispatches() *prometheus.CounterVec {
	RegisterMetrics()
	return emailDispatchTotal
}

// Uploads exposes the accepted upload counter.
func Uploads() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadsTotal
}

// UploadsRejected exposes the rejected upload counter.
func UploadsRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadsRejected
}
