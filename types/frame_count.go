package types

import (
	"math"
	"strconv"
)

// FrameCount is a signed amount of frames (a distance between two FrameIndex-es).
type FrameCount int64

func NewFrameCount(v int64) (FrameCount, error) {
	if v < 0 {
		return 0, ErrInvalidValue{Type: "FrameCount", Value: v, Reason: "must not be negative"}
	}
	return FrameCount(v), nil
}

func (c FrameCount) Int64() int64 {
	return int64(c)
}

func (c FrameCount) Mul(k int64) FrameCount {
	return c * FrameCount(k)
}

// FloorDiv returns floor(c / d).
func (c FrameCount) FloorDiv(d float64) (FrameCount, error) {
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, ErrInvalidValue{Type: "divisor", Value: d}
	}
	return FrameCount(math.Floor(float64(c) / d)), nil
}

func (c FrameCount) ToInterval(conv FrameTimeConverter) DurationInterval {
	return conv.FrameCountToInterval(c)
}

func (c FrameCount) String() string {
	return strconv.FormatInt(int64(c), 10)
}
