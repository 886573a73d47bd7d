package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Submission("contact", "sent")
	m.Submission("contact", "sent")
	m.RateLimitDecision("contact", false)
	m.EmailSend("log", nil)
	m.EmailSend("smtp", errors.New("down"))
	m.CaptchaVerification(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("contact", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimit.WithLabelValues("contact", "denied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emailSends.WithLabelValues("smtp", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.captcha.WithLabelValues("passed")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Submission("newsletter", "honeypot")
	m.ObserveRequest("POST", "/api/newsletter", "200", 0.01)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `forms_submissions_total{endpoint="newsletter",outcome="honeypot"} 1`)
	assert.Contains(t, string(body), "forms_http_request_duration_seconds_bucket")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Submission("contact", "sent")
		m.RateLimitDecision("contact", true)
		m.EmailSend("log", nil)
		m.CaptchaVerification(false)
		m.ObserveRequest("GET", "/api/health", "200", 0.001)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
