package config

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/framebench"
	"github.com/xaionaro-go/framebench/source"
	"github.com/xaionaro-go/framebench/types"
)

func TestDefaultWriteRead(t *testing.T) {
	cfg := Default()

	var b bytes.Buffer
	n, err := cfg.WriteTo(&b)
	require.NoError(t, err)
	require.Equal(t, int64(b.Len()), n)

	var cfgDup Config
	_, err = cfgDup.ReadFrom(&b)
	require.NoError(t, err)
	require.Equal(t, cfg, cfgDup)
}

func TestWriteReadPath(t *testing.T) {
	ctx := context.Background()
	cfgPath := filepath.Join(t.TempDir(), "framebench.yaml")

	cfg := Default()
	cfg.Unsequenced = false
	cfg.Concurrency = 3
	require.NoError(t, WriteConfigToPath(ctx, cfgPath, cfg))

	cfgDup := Default()
	require.NoError(t, ReadConfigFromPath(cfgPath, &cfgDup))
	require.Equal(t, cfg, cfgDup)
}

func TestReadPartial(t *testing.T) {
	cfg := Default()
	_, err := cfg.Read([]byte(`
frame_rate: "30000/1001"
range:
  start: 10
  end: 19
unsequenced: true
refresh_interval: 1s
simulated_source:
  workers: 2
  latency: 3ms
`))
	require.NoError(t, err)
	require.Equal(t, types.Rational{Num: 30000, Den: 1001}, cfg.FrameRate)
	require.EqualValues(t, 10, cfg.Range.Total())
	require.True(t, cfg.Unsequenced)
	require.True(t, cfg.Prefetch)
	require.Equal(t, time.Second, cfg.RefreshInterval)
	require.Equal(t, uint(2), cfg.SimulatedSource.Workers)
	require.Equal(t, 3*time.Millisecond, cfg.SimulatedSource.Latency)

	_, err = cfg.Read([]byte("range: {start: -1, end: 5}"))
	require.Error(t, err)
}

func TestParams(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	require.True(t, cfg.Unsequenced)
	cfg.Unsequenced = false
	cfg.Concurrency = 6
	params, err := cfg.Params(ctx)
	require.NoError(t, err)
	require.Equal(t, uint(6), params.Concurrency)
	require.Equal(t, framebench.OrderingSequenced, params.Ordering)
	require.Equal(t, cfg.Range, params.Range)

	cfg.Prefetch = false
	cfg.Unsequenced = true
	params, err = cfg.Params(ctx)
	require.NoError(t, err)
	require.Equal(t, uint(1), params.Concurrency)
	require.Equal(t, framebench.OrderingUnsequenced, params.Ordering)

	cfg.Prefetch = true
	cfg.Concurrency = 0
	params, err = cfg.Params(ctx)
	require.NoError(t, err)
	require.Equal(t, UsableCPUs(ctx), params.Concurrency)
	require.GreaterOrEqual(t, params.Concurrency, uint(1))
}

func TestTimeRange(t *testing.T) {
	ctx := context.Background()
	cfg := Default()
	cfg.FrameRate = types.Rational{Num: 25, Den: 1}
	cfg.TimeRange = &TimeRange{
		Start: types.UnsignedDuration(uint(1000)),
		End:   types.UnsignedDuration(uint(2000)),
	}
	params, err := cfg.Params(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 25, params.Range.Start.Int64())
	require.EqualValues(t, 50, params.Range.End.Int64())

	cfg.FrameRate = types.Rational{Num: 0, Den: 1}
	_, err = cfg.Params(ctx)
	require.Error(t, err)

	cfg.ZeroFPSFallback = true
	params, err = cfg.Params(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, params.Range.Start.Int64())
}

type noCacheSource struct{}

func (noCacheSource) RequestFrame(context.Context, types.FrameIndex) source.FrameHandle {
	return nil
}

func TestControllerOptions(t *testing.T) {
	cfg := Default()
	cfg.ClearCache = true
	_, err := cfg.ControllerOptions(noCacheSource{})
	require.Error(t, err)

	cfg.ClearCache = false
	opts, err := cfg.ControllerOptions(noCacheSource{})
	require.NoError(t, err)
	require.Len(t, opts, 2)

	cfg.Smoothing = "unknown"
	_, err = cfg.ControllerOptions(noCacheSource{})
	require.Error(t, err)
}
