package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationResult(t *testing.T) {
	m := New()
	m.NotificationResult("sms", "fabricator_status", "sent")
	m.NotificationResult("sms", "fabricator_status", "sent")
	m.NotificationResult("email", "rep_assigned", "failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Notifications.WithLabelValues("sms", "fabricator_status", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("email", "rep_assigned", "failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.NotificationResult("sms", "x", "sent")
		m.QueueDepth(3)
	})
}

func TestHandlerExposesNamespace(t *testing.T) {
	m := New()
	m.HTTPRequests.WithLabelValues("GET", "/health", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "xylem_http_requests_total")
}
