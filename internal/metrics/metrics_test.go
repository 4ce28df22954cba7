package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	r := NewRegistry()

	r.IncrementCounter("requests", nil, "total requests")
	r.IncrementCounter("requests", nil, "total requests")
	r.AddToCounter("requests", 3, nil, "total requests")

	snapshot := r.GetAllMetrics()
	counters := snapshot["counters"].(map[string]*Metric)
	require.Contains(t, counters, "requests")
	assert.Equal(t, float64(5), counters["requests"].Value)
	assert.Equal(t, Counter, counters["requests"].Type)
}

func TestCounterLabelsKeyDeterministic(t *testing.T) {
	r := NewRegistry()

	// The same label set in any insertion order hits the same series.
	r.IncrementCounter("http", map[string]string{"method": "GET", "status": "200"}, "")
	r.IncrementCounter("http", map[string]string{"status": "200", "method": "GET"}, "")

	counters := r.GetAllMetrics()["counters"].(map[string]*Metric)
	require.Len(t, counters, 1)
	for _, c := range counters {
		assert.Equal(t, float64(2), c.Value)
	}
}

func TestTimer(t *testing.T) {
	r := NewRegistry()

	r.RecordTimer("op", 100*time.Millisecond, nil, "op duration")
	r.RecordTimer("op", 300*time.Millisecond, nil, "op duration")

	timers := r.GetAllMetrics()["timers"].(map[string]*TimerMetric)
	timer := timers["op"]
	require.NotNil(t, timer)

	assert.Equal(t, int64(2), timer.Count)
	assert.InDelta(t, 400, timer.Sum, 0.01)
	assert.InDelta(t, 100, timer.Min, 0.01)
	assert.InDelta(t, 300, timer.Max, 0.01)
	assert.InDelta(t, 200, timer.Average, 0.01)
}

func TestTimerPercentiles(t *testing.T) {
	r := NewRegistry()

	for i := 1; i <= 100; i++ {
		r.RecordTimer("op", time.Duration(i)*time.Millisecond, nil, "")
	}

	timers := r.GetAllMetrics()["timers"].(map[string]*TimerMetric)
	timer := timers["op"]
	require.NotNil(t, timer)

	assert.InDelta(t, 96, timer.P95, 1.0)
	assert.InDelta(t, 100, timer.P99, 1.0)
}

func TestGauge(t *testing.T) {
	r := NewRegistry()

	r.SetGauge("subscribers", 3, nil, "active subscribers")
	r.SetGauge("subscribers", 1, nil, "active subscribers")

	gauges := r.GetAllMetrics()["gauges"].(map[string]*Metric)
	require.Contains(t, gauges, "subscribers")
	assert.Equal(t, float64(1), gauges["subscribers"].Value)
	assert.Equal(t, Gauge, gauges["subscribers"].Type)
}

func TestSnapshotMetadata(t *testing.T) {
	r := NewRegistry()
	snapshot := r.GetAllMetrics()

	assert.Contains(t, snapshot, "uptime_ms")
	assert.Contains(t, snapshot, "timestamp")
}

func TestGlobalRegistry(t *testing.T) {
	IncrementCounter("global_test_counter", nil, "")
	snapshot := GetAllMetrics()
	counters := snapshot["counters"].(map[string]*Metric)
	assert.Contains(t, counters, "global_test_counter")
}
