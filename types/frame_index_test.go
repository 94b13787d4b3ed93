package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func frameIndex(t *testing.T, v int64) FrameIndex {
	t.Helper()
	f, err := NewFrameIndex(v)
	require.NoError(t, err)
	return f
}

func TestFrameIndexNegative(t *testing.T) {
	_, err := NewFrameIndex(-1)
	require.Error(t, err)
	require.True(t, errors.As(err, &ErrInvalidValue{}))

	_, err = NewFrameCount(-1)
	require.True(t, errors.As(err, &ErrInvalidValue{}))
}

func TestFrameIndexArithmetic(t *testing.T) {
	for a := int64(0); a < 50; a++ {
		for b := int64(0); b <= a; b++ {
			fa, fb := frameIndex(t, a), frameIndex(t, b)
			diff := fa.Sub(fb)
			require.GreaterOrEqual(t, diff, FrameCount(0))

			back, err := fb.Add(diff)
			require.NoError(t, err)
			require.Equal(t, fa, back)

			back, err = fa.SubCount(diff)
			require.NoError(t, err)
			require.Equal(t, fb, back)
		}
	}

	_, err := frameIndex(t, 3).SubCount(4)
	require.Error(t, err)
	_, err = frameIndex(t, 3).Add(-4)
	require.Error(t, err)
}

func TestFrameIndexOrdering(t *testing.T) {
	a, b := frameIndex(t, 1), frameIndex(t, 2)
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 0, a.Compare(frameIndex(t, 1)))
	require.Equal(t, b, a.Next())
	require.Equal(t, FrameIndex{}, UnsignedFrameIndex(uint(0)))
}

func TestFrameCountOps(t *testing.T) {
	require.Equal(t, FrameCount(12), FrameCount(4).Mul(3))

	c, err := FrameCount(10).FloorDiv(3)
	require.NoError(t, err)
	require.Equal(t, FrameCount(3), c)

	c, err = FrameCount(-10).FloorDiv(3)
	require.NoError(t, err)
	require.Equal(t, FrameCount(-4), c)

	c, err = FrameCount(10).FloorDiv(2.5)
	require.NoError(t, err)
	require.Equal(t, FrameCount(4), c)

	_, err = FrameCount(10).FloorDiv(0)
	require.Error(t, err)
}

func TestFrameIndexJSON(t *testing.T) {
	b, err := json.Marshal(frameIndex(t, 42))
	require.NoError(t, err)
	require.Equal(t, "42", string(b))

	var f FrameIndex
	require.NoError(t, json.Unmarshal([]byte("7"), &f))
	require.Equal(t, int64(7), f.Int64())
	require.Error(t, json.Unmarshal([]byte("-7"), &f))
}
