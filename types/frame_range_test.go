package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameRange(t *testing.T) {
	r := NewFrameRange(frameIndex(t, 10), frameIndex(t, 19))
	require.True(t, r.IsValid())
	require.Equal(t, FrameCount(10), r.Total())
	require.True(t, r.Contains(frameIndex(t, 10)))
	require.True(t, r.Contains(frameIndex(t, 19)))
	require.False(t, r.Contains(frameIndex(t, 20)))

	require.False(t, NewFrameRange(frameIndex(t, 5), frameIndex(t, 2)).IsValid())

	t.Run("WithStart", func(t *testing.T) {
		r2 := r.WithStart(frameIndex(t, 25))
		require.Equal(t, NewFrameRange(frameIndex(t, 25), frameIndex(t, 25)), r2)
		r2 = r.WithStart(frameIndex(t, 12))
		require.Equal(t, NewFrameRange(frameIndex(t, 12), frameIndex(t, 19)), r2)
	})

	t.Run("WithEnd", func(t *testing.T) {
		r2 := r.WithEnd(frameIndex(t, 3))
		require.Equal(t, NewFrameRange(frameIndex(t, 3), frameIndex(t, 3)), r2)
	})

	t.Run("WithTotal", func(t *testing.T) {
		r2, err := r.WithTotal(5, frameIndex(t, 100))
		require.NoError(t, err)
		require.Equal(t, NewFrameRange(frameIndex(t, 10), frameIndex(t, 14)), r2)

		r2, err = r.WithTotal(20, frameIndex(t, 24))
		require.NoError(t, err)
		require.Equal(t, NewFrameRange(frameIndex(t, 5), frameIndex(t, 24)), r2)
		require.Equal(t, FrameCount(20), r2.Total())

		r2, err = r.WithTotal(100, frameIndex(t, 24))
		require.NoError(t, err)
		require.Equal(t, NewFrameRange(frameIndex(t, 0), frameIndex(t, 24)), r2)

		_, err = r.WithTotal(0, frameIndex(t, 24))
		require.Error(t, err)
	})
}
