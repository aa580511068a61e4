package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordToRegistry(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSearch("split", 3*time.Millisecond)
	m.ObserveSearch("split", time.Millisecond)
	m.ObserveCategorized("mapped", 5)
	m.ObserveCategorized("fallback", 0)
	m.ObserveHTTP("GET", "/api/search", 200, time.Millisecond)
	m.SetReconciled(35)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.searches.WithLabelValues("split")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.categorized.WithLabelValues("mapped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/search", "200")))
	assert.Equal(t, 35.0, testutil.ToFloat64(m.reconciledCount))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSearch("primary", time.Millisecond)
		m.ObserveCategorized("mapped", 1)
		m.ObserveCategorizeRun("ok")
		m.ObserveHTTP("GET", "", 404, time.Millisecond)
		m.SetReconciled(1)
	})
}
