package framebench

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/framebench/source/simulated"
)

func TestWithSimulatedSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, ordering := range []Ordering{OrderingSequenced, OrderingUnsequenced} {
		t.Run(ordering.String(), func(t *testing.T) {
			src := simulated.New(ctx, simulated.Config{
				Workers:   4,
				Latency:   time.Millisecond,
				Jitter:    time.Millisecond,
				FailEvery: 10,
				CacheSize: 100,
			}, nil)
			defer src.Close(ctx)

			c := New(src, OptionPrepHook(PrepHookClearCache(src)))
			params := Params{
				Range:       frameRange(t, 0, 49),
				Concurrency: 4,
				Ordering:    ordering,
			}
			for attempt := 0; attempt < 2; attempt++ {
				require.NoError(t, c.Start(ctx, params))
				result, err := c.Wait(ctx)
				require.NoError(t, err)
				require.Equal(t, StateCompleted, result.State)
				require.EqualValues(t, 50, result.Stats.FramesCompleted)
				require.EqualValues(t, 5, result.FramesFailed)
				require.Positive(t, result.Stats.FPS)
			}

			// the cache is cleared before each run, so nothing is reused
			require.EqualValues(t, 100, src.RequestCount.Load())
			require.EqualValues(t, 100, src.DecodeCount.Load())
			require.Zero(t, src.CacheHits.Load())
			require.LessOrEqual(t, src.MaxInFlight.Load(), int64(4))
		})
	}
}

func TestAbortWhileResolving(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, ordering := range []Ordering{OrderingSequenced, OrderingUnsequenced} {
		t.Run(ordering.String(), func(t *testing.T) {
			src := simulated.New(ctx, simulated.Config{
				Workers: 8,
				Latency: time.Millisecond,
				Jitter:  time.Millisecond,
			}, nil)
			defer src.Close(ctx)

			c := New(src)
			require.NoError(t, c.Start(ctx, Params{
				Range:       frameRange(t, 0, 99999),
				Concurrency: 8,
				Ordering:    ordering,
			}))
			require.Eventually(t, func() bool {
				return c.Snapshot(ctx).FramesCompleted >= 50
			}, waitFor, tick)

			// the workers keep resolving while the abort happens
			c.Abort(ctx)
			require.Equal(t, StateAborted, c.State(ctx))
			requestedAtAbort := src.RequestCount.Load()
			completedAtAbort := c.Snapshot(ctx).FramesCompleted

			result, err := c.Wait(ctx)
			require.NoError(t, err)
			require.Equal(t, StateAborted, result.State)
			require.Equal(t, completedAtAbort, result.Stats.FramesCompleted)
			require.EqualValues(t, requestedAtAbort, result.FramesRequested)
			require.Zero(t, src.InFlight.Load())

			require.Never(t, func() bool {
				return src.RequestCount.Load() != requestedAtAbort
			}, 50*time.Millisecond, tick)
			require.Equal(t, completedAtAbort, c.Snapshot(ctx).FramesCompleted)
			require.Equal(t, StateAborted, c.State(ctx))
		})
	}
}
