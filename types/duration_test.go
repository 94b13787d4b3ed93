package types

import (
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"
)

func TestDurationFromStd(t *testing.T) {
	for _, tc := range []struct {
		in  time.Duration
		out int64
	}{
		{0, 0},
		{1499 * time.Microsecond, 1},
		{1500 * time.Microsecond, 2},
		{2500 * time.Microsecond, 3},
		{time.Second, 1000},
	} {
		d, err := DurationFromStd(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.out, d.Milliseconds(), tc.in.String())
	}

	_, err := DurationFromStd(-time.Second)
	require.Error(t, err)

	require.Equal(t, DurationInterval(-2), IntervalFromStd(-1500*time.Microsecond))
}

func TestDurationArithmetic(t *testing.T) {
	a, err := NewDuration(1500)
	require.NoError(t, err)
	b, err := NewDuration(500)
	require.NoError(t, err)

	require.Equal(t, DurationInterval(1000), a.Sub(b))
	require.Equal(t, DurationInterval(-1000), b.Sub(a))

	c, err := b.Add(a.Sub(b))
	require.NoError(t, err)
	require.Equal(t, a, c)

	_, err = b.Add(-501)
	require.Error(t, err)

	half, err := DurationInterval(1001).Div(2)
	require.NoError(t, err)
	require.Equal(t, DurationInterval(501), half)
	require.Equal(t, DurationInterval(3000), DurationInterval(1000).Mul(3))
	require.Equal(t, 1.5, DurationInterval(1500).Seconds())
}

func TestDurationString(t *testing.T) {
	d, err := NewDuration(3_723_004)
	require.NoError(t, err)
	require.Equal(t, "1:02:03.004", d.String())
	require.Equal(t, "-0:00:01.500", DurationInterval(-1500).String())
}

func TestDurationYAML(t *testing.T) {
	type cfg struct {
		Refresh DurationInterval `yaml:"refresh"`
		At      Duration         `yaml:"at"`
	}
	var c cfg
	require.NoError(t, yaml.Unmarshal([]byte("refresh: 150ms\nat: 1m2s\n"), &c))
	require.Equal(t, DurationInterval(150), c.Refresh)
	require.Equal(t, int64(62_000), c.At.Milliseconds())

	b, err := yaml.Marshal(c)
	require.NoError(t, err)
	var c2 cfg
	require.NoError(t, yaml.Unmarshal(b, &c2))
	require.Equal(t, c, c2)
}
