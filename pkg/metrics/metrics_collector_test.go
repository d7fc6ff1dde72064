package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDraw(t *testing.T) {
	m := NewMetricsCollector()

	m.RecordDraw("sweepsfan", "won")
	m.RecordDraw("sweepsfan", "won")
	m.RecordDraw("sweepsfan", "no_eligible")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.drawsTotal.WithLabelValues("sweepsfan", "won")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.drawsTotal.WithLabelValues("sweepsfan", "no_eligible")))
}

func TestRecordImageGeneration(t *testing.T) {
	m := NewMetricsCollector()

	m.RecordImageGeneration("prizepal", true)
	m.RecordImageGeneration("prizepal", false)
	m.RecordImageGeneration("prizepal", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.imageGenerationTotal.WithLabelValues("prizepal", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.imageGenerationTotal.WithLabelValues("prizepal", "generated")))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewMetricsCollector()
	b := NewMetricsCollector()

	a.RecordHTTPRequest("GET", "/healthz", "200", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.httpRequestsTotal.WithLabelValues("GET", "/healthz", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.httpRequestsTotal.WithLabelValues("GET", "/healthz", "200")))
}

func TestGetStatusCategory(t *testing.T) {
	assert.Equal(t, "2xx", GetStatusCategory(200))
	assert.Equal(t, "3xx", GetStatusCategory(302))
	assert.Equal(t, "4xx", GetStatusCategory(404))
	assert.Equal(t, "5xx", GetStatusCategory(503))
	assert.Equal(t, "unknown", GetStatusCategory(100))
}
