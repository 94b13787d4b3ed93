package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/framebench"
	"github.com/xaionaro-go/framebench/throughput"
)

func TestPrometheus(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheus(reg)
	require.NoError(t, err)

	_, err = NewPrometheus(reg)
	require.Error(t, err, "double registration must fail")

	m.RunStarted(ctx, uuid.New(), framebench.Params{Concurrency: 2})
	require.Equal(t, 1.0, testutil.ToFloat64(m.Running))

	m.FrameRequested(ctx)
	m.FrameRequested(ctx)
	m.FrameCompleted(ctx, false, time.Millisecond)
	m.FrameCompleted(ctx, true, 2*time.Millisecond)
	require.Equal(t, 2.0, testutil.ToFloat64(m.FramesRequested))
	require.Equal(t, 0.0, testutil.ToFloat64(m.FramesDiscarded))
	require.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
	require.Equal(t, 1.0, testutil.ToFloat64(m.FramesCompleted.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.FramesCompleted.WithLabelValues("failed")))

	m.FrameRequested(ctx)
	require.Equal(t, 1.0, testutil.ToFloat64(m.InFlight))
	m.FrameDiscarded(ctx)
	require.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
	require.Equal(t, 1.0, testutil.ToFloat64(m.FramesDiscarded))

	m.RunEnded(ctx, &framebench.Result{
		State: framebench.StateCompleted,
		Stats: throughput.Snapshot{FPS: 42},
	})
	require.Equal(t, 0.0, testutil.ToFloat64(m.Running))
	require.Equal(t, 42.0, testutil.ToFloat64(m.LastRunFPS))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("completed")))
}
