package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/opcua-core/pkg/metrics"
)

func TestTimerObserveDuration(t *testing.T) {
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "test_metrics_timer_duration_seconds",
		Help: "scratch histogram for a single test",
	})

	timer := metrics.NewTimer()
	time.Sleep(5 * time.Millisecond)
	timer.ObserveDuration(histogram)

	assert.Greater(t, timer.Duration(), time.Duration(0))
}

func TestTimerObserveDurationVec(t *testing.T) {
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "test_metrics_timer_duration_vec_seconds",
			Help: "scratch histogram vec for a single test",
		},
		[]string{"operation"},
	)

	timer := metrics.NewTimer()
	time.Sleep(5 * time.Millisecond)
	timer.ObserveDurationVec(vec, "read")

	assert.Greater(t, timer.Duration(), time.Duration(0))
}

func TestHandlerIsNotNil(t *testing.T) {
	h := metrics.Handler()
	require.NotNil(t, h)
}
