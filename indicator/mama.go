// mama.go implements the MESA Adaptive Moving Average (MAMA) indicator.

package indicator

import (
	"sync"

	indicators "github.com/lmpizarro/go_ehlers_indicators"
)

// MAMA adapts its smoothing to the cycle of the measurements, so it follows
// steps in throughput faster than an EMA of the same window.
//
// Until the window is filled the measurements are returned as is.
type MAMA[T Number] struct {
	FastLimit         float64
	SlowLimit         float64
	ring              []float64
	ordered           []float64
	curIdx            int
	measurementsCount int
	locker            sync.Mutex
}

var _ MovingAverage[float64] = (*MAMA[float64])(nil)

func NewMAMADefault[T Number](n int) *MAMA[T] {
	return NewMAMA[T](n, 0.5, 0.05)
}

func NewMAMA[T Number](
	n int,
	fastLimit float64,
	slowLimit float64,
) *MAMA[T] {
	return &MAMA[T]{
		FastLimit: fastLimit,
		SlowLimit: slowLimit,
		ring:      make([]float64, n),
		ordered:   make([]float64, n),
	}
}

func (m *MAMA[T]) Update(v T) T {
	m.locker.Lock()
	defer m.locker.Unlock()

	m.ring[m.curIdx] = float64(v)
	m.curIdx = (m.curIdx + 1) % len(m.ring)
	m.measurementsCount++
	if m.measurementsCount < len(m.ring) {
		return v
	}

	// oldest measurement first:
	n := copy(m.ordered, m.ring[m.curIdx:])
	copy(m.ordered[n:], m.ring[:m.curIdx])

	result := indicators.MAMA(m.ordered, m.FastLimit, m.SlowLimit)
	return T(result[len(result)-1])
}

func (m *MAMA[T]) InitPeriod() int64 {
	return int64(len(m.ring))
}

func (m *MAMA[T]) Valid() bool {
	m.locker.Lock()
	defer m.locker.Unlock()
	return m.measurementsCount >= len(m.ring)
}
