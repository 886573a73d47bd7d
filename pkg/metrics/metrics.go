// Package metrics exposes Prometheus counters for the form pipeline. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "forms"

type Metrics struct {
	registry *prometheus.Registry

	submissions     *prometheus.CounterVec
	rateLimit       *prometheus.CounterVec
	emailSends      *prometheus.CounterVec
	captcha         *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry, alongside the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Form submissions by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		rateLimit: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_decisions_total",
				Help:      "Rate limiter decisions by endpoint",
			},
			[]string{"endpoint", "decision"},
		),
		emailSends: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "email_sends_total",
				Help:      "Outbound email attempts by backend and result",
			},
			[]string{"backend", "result"},
		),
		captcha: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "captcha_verifications_total",
				Help:      "Captcha verification results",
			},
			[]string{"result"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Request duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.submissions,
		m.rateLimit,
		m.emailSends,
		m.captcha,
		m.requestDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Submission(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(endpoint, outcome).Inc()
}

func (m *Metrics) RateLimitDecision(endpoint string, allowed bool) {
	if m == nil {
		return
	}
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	m.rateLimit.WithLabelValues(endpoint, decision).Inc()
}

func (m *Metrics) EmailSend(backend string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.emailSends.WithLabelValues(backend, result).Inc()
}

func (m *Metrics) CaptchaVerification(ok bool) {
	if m == nil {
		return
	}
	result := "failed"
	if ok {
		result = "passed"
	}
	m.captcha.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
