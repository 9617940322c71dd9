package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAllocation(t *testing.T) {
	m := New("availability")

	m.RecordAllocation("table", "allocated")
	m.RecordAllocation("table", "allocated")
	m.RecordAllocation("hall", "conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AllocationDecisions.WithLabelValues("availability", "table", "allocated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AllocationDecisions.WithLabelValues("availability", "hall", "conflict")))
}

func TestObserveQuery_CountsErrors(t *testing.T) {
	m := New("availability")

	m.ObserveQuery("select", time.Millisecond, nil)
	m.ObserveQuery("select", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("availability", "select")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordAllocation("table", "allocated")
		m.ObserveSuggestions("table", 3)
		m.ObserveHTTP(http.MethodGet, "/x", http.StatusOK, time.Millisecond)
		m.ObserveQuery("insert", time.Millisecond, nil)
		m.RecordNotificationFailure("allocation.requested")
	})
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New("availability")
	m.RecordNotificationFailure("allocation.requested")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "notification_failures_total")
}
