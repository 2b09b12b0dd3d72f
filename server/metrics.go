package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	bylawkit "github.com/reoring/bylawkit"
)

// Validation outcomes.
const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

type metrics struct {
	validations *prometheus.CounterVec
	issues      *prometheus.CounterVec
	warnings    *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bylaw_validations_total",
			Help: "Bylaw payload validations by mode and outcome.",
		}, []string{"mode", "outcome"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bylaw_validation_issues_total",
			Help: "Validation issues reported, by code.",
		}, []string{"code"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bylaw_validation_warnings_total",
			Help: "Consistency warnings reported, by code.",
		}, []string{"code"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bylaw_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.validations, m.issues, m.warnings, m.requests)
	return m
}

func (m *metrics) observeValidation(mode bylawkit.Mode, warnings bylawkit.Issues, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
		if iss, ok := bylawkit.AsIssues(err); ok {
			outcome = outcomeInvalid
			for _, it := range iss {
				m.issues.WithLabelValues(it.Code).Inc()
			}
		}
	}
	for _, w := range warnings {
		m.warnings.WithLabelValues(w.Code).Inc()
	}
	m.validations.WithLabelValues(mode.String(), outcome).Inc()
}

func (m *metrics) observeRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
