package framerate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/framebench/types"
)

func newConverter(t *testing.T, num, den int64) *Converter {
	t.Helper()
	c, err := New(types.Rational{Num: num, Den: den})
	require.NoError(t, err)
	return c
}

func TestNewRejectsNonPositive(t *testing.T) {
	for _, fps := range []types.Rational{
		{Num: 0, Den: 1},
		{Num: -24, Den: 1},
		{Num: 24, Den: 0},
		{Num: 24, Den: -1},
	} {
		_, err := New(fps)
		require.Error(t, err, fps.String())
		require.True(t, errors.As(err, &types.ErrInvalidValue{}), fps.String())
	}
}

func TestZeroFPSFallback(t *testing.T) {
	c, err := New(types.Rational{Num: 0, Den: 1}, OptionZeroFPSFallback(true))
	require.NoError(t, err)
	require.Equal(t, types.Rational{Num: 1, Den: 1}, c.FPS())

	_, err = New(types.Rational{Num: -1, Den: 1}, OptionZeroFPSFallback(true))
	require.Error(t, err)
}

func TestFrameIndexToDuration(t *testing.T) {
	for _, tc := range []struct {
		num, den int64
		frame    int64
		ms       int64
	}{
		{24000, 1001, 0, 0},
		{24000, 1001, 1, 42},
		{24000, 1001, 24, 1001},
		{30, 1, 1, 33},
		{30, 1, 2, 67},
		{8, 1, 1, 125},
		{16, 1, 1, 63}, // 62.5 rounds up
		{2000, 1, 1, 1},
		{2000, 1, 3, 2},
	} {
		c := newConverter(t, tc.num, tc.den)
		f := types.UnsignedFrameIndex(uint64(tc.frame))
		require.Equal(t, tc.ms, f.ToDuration(c).Milliseconds(), "%d @ %d/%d", tc.frame, tc.num, tc.den)
	}
}

func TestDurationToFrameIndex(t *testing.T) {
	for _, tc := range []struct {
		num, den int64
		ms       int64
		frame    int64
	}{
		{24000, 1001, 0, 0},
		{24000, 1001, 42, 1},
		{24000, 1001, 1001, 24},
		{25, 1, 20, 1}, // 0.5 rounds up
		{25, 1, 19, 0},
		{30, 1, 1000, 30},
	} {
		c := newConverter(t, tc.num, tc.den)
		d := types.UnsignedDuration(uint64(tc.ms))
		require.Equal(t, tc.frame, d.ToFrameIndex(c).Int64(), "%dms @ %d/%d", tc.ms, tc.num, tc.den)
	}
}

func TestIntervals(t *testing.T) {
	c := newConverter(t, 16, 1)
	require.Equal(t, types.DurationInterval(63), types.FrameCount(1).ToInterval(c))
	require.Equal(t, types.DurationInterval(-63), types.FrameCount(-1).ToInterval(c))
	require.Equal(t, types.FrameCount(-16), types.DurationInterval(-1000).ToFrameCount(c))
}

func TestRoundTripWithinOneFrame(t *testing.T) {
	for _, fps := range []types.Rational{
		{Num: 24000, Den: 1001},
		{Num: 24, Den: 1},
		{Num: 25, Den: 1},
		{Num: 30000, Den: 1001},
		{Num: 60000, Den: 1001},
		{Num: 120, Den: 1},
		{Num: 240, Den: 1},
		{Num: 1000, Den: 1},
		{Num: 1, Den: 3},
	} {
		c, err := New(fps)
		require.NoError(t, err)
		for f := uint64(0); f < 20000; f++ {
			idx := types.UnsignedFrameIndex(f)
			back := idx.ToDuration(c).ToFrameIndex(c)
			diff := back.Sub(idx)
			require.LessOrEqual(t, diff, types.FrameCount(1), "fps:%s frame:%d", fps, f)
			require.GreaterOrEqual(t, diff, types.FrameCount(-1), "fps:%s frame:%d", fps, f)
		}
	}
}

func TestFineGrainedDecimalRate(t *testing.T) {
	fps, err := types.RationalFromString("23.976023976023976")
	require.NoError(t, err)
	c, err := New(*fps)
	require.NoError(t, err)
	ntsc := newConverter(t, 24000, 1001)

	for f := uint64(0); f <= 1_000_000; f += 7 {
		idx := types.UnsignedFrameIndex(f)
		d := idx.ToDuration(c)
		require.GreaterOrEqual(t, d.Milliseconds(), int64(0), "frame:%d", f)
		require.InDelta(t, idx.ToDuration(ntsc).Milliseconds(), d.Milliseconds(), 1, "frame:%d", f)

		diff := d.ToFrameIndex(c).Sub(idx)
		require.LessOrEqual(t, diff, types.FrameCount(1), "frame:%d", f)
		require.GreaterOrEqual(t, diff, types.FrameCount(-1), "frame:%d", f)
	}
	require.Equal(t, types.DurationInterval(-41708), types.FrameCount(-1000).ToInterval(c))
	require.Equal(t, types.FrameCount(-1000), types.DurationInterval(-41708).ToFrameCount(c))
}

func TestConversionSaturates(t *testing.T) {
	c := newConverter(t, 1, math.MaxInt64)
	require.Equal(t, types.DurationInterval(math.MaxInt64), types.FrameCount(2).ToInterval(c))
	require.Equal(t, types.DurationInterval(math.MinInt64), types.FrameCount(-2).ToInterval(c))
	require.Equal(t, int64(math.MaxInt64), types.UnsignedFrameIndex(uint64(2)).ToDuration(c).Milliseconds())
	require.Equal(t, types.FrameIndex{}, types.UnsignedDuration(uint64(math.MaxInt64)).ToFrameIndex(c))

	c = newConverter(t, math.MaxInt64, 1)
	require.Equal(t, types.FrameCount(math.MaxInt64), types.DurationInterval(2000).ToFrameCount(c))
	require.Equal(t, types.FrameCount(math.MinInt64), types.DurationInterval(-2000).ToFrameCount(c))
}
