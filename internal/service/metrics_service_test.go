package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellixel001/suvashpanel/internal/apiclient"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, c.Write(&metric))
	return metric.GetCounter().GetValue()
}

func TestMetricsServiceRecordsUpstreamCalls(t *testing.T) {
	m := NewMetricsService()
	m.ObserveAPICall(http.MethodGet, 200, 20*time.Millisecond)
	m.ObserveAPICall(http.MethodGet, 204, 10*time.Millisecond)
	m.ObserveAPICall(http.MethodPost, 0, time.Second)
	m.ObserveRefresh(apiclient.RefreshSucceeded)
	m.ObserveRefresh(apiclient.RefreshFailed)
	m.ObserveRefresh(apiclient.RefreshFailed)

	assert.Equal(t, 2.0, counterValue(t, m.apiTotal.WithLabelValues("GET", "2xx")))
	assert.Equal(t, 1.0, counterValue(t, m.apiTotal.WithLabelValues("POST", "network_error")))
	assert.Equal(t, 2.0, counterValue(t, m.refreshTotal.WithLabelValues("failure")))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["upstream_api_requests_total"])
	assert.True(t, names["token_refresh_total"])
	assert.True(t, names["goroutines_total"])
}

func TestMetricsHandlerServesRegistry(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/tasks", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/api/tasks",status="200"} 1`)

	var nilMetrics *MetricsService
	rec = httptest.NewRecorder()
	nilMetrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
