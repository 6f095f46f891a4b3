package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycleCounters(t *testing.T) {
	m := New()

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed("client_disconnect")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SessionsActive))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.SessionsOpened))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SessionsClosed.WithLabelValues("client_disconnect")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionOpened()
		m.SessionClosed("x")
		m.Dispatched("accepted")
		m.UpstreamFetched("summary", "ok", 0.1)
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.Dispatched("accepted")
	m.UpstreamFetched("tasks", "ok", 0.2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `onet_mcp_dispatch_total{outcome="accepted"} 1`)
	assert.Contains(t, body, `onet_mcp_upstream_requests_total{outcome="ok",section="tasks"} 1`)
}
