// moving_average.go defines the MovingAverage interface for smoothing noisy measurements.

// Package indicator provides moving averages used to smooth measurements
// such as instantaneous frame rates.
package indicator

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

type MovingAverage[T Number] interface {
	// Update feeds a new measurement and returns the current average.
	Update(v T) T
	InitPeriod() int64
	Valid() bool
}

type Kind string

const (
	KindNone Kind = "none"
	KindSMA  Kind = "sma"
	KindEMA  Kind = "ema"
	KindMAMA Kind = "mama"
)

// New constructs a moving average of the given kind over a window of n
// measurements. KindNone returns nil.
func New[T Number](kind Kind, n int) (MovingAverage[T], error) {
	if n < 1 {
		return nil, fmt.Errorf("the window must contain at least one measurement, got %d", n)
	}
	switch Kind(strings.ToLower(string(kind))) {
	case KindNone, "":
		return nil, nil
	case KindSMA:
		return NewSMA[T](n), nil
	case KindEMA:
		return NewEMA[T](n), nil
	case KindMAMA:
		return NewMAMADefault[T](n), nil
	default:
		return nil, fmt.Errorf("unknown moving average kind %q", kind)
	}
}
