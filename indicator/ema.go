package indicator

import (
	"sync"
)

// EMA is the exponential moving average with alpha = 2/(n+1). The first
// measurement seeds the average.
type EMA[T Number] struct {
	Alpha             float64
	period            int
	value             float64
	measurementsCount int
	locker            sync.Mutex
}

var _ MovingAverage[float64] = (*EMA[float64])(nil)

func NewEMA[T Number](n int) *EMA[T] {
	return &EMA[T]{
		Alpha:  2 / float64(n+1),
		period: n,
	}
}

func (m *EMA[T]) Update(v T) T {
	m.locker.Lock()
	defer m.locker.Unlock()

	if m.measurementsCount == 0 {
		m.value = float64(v)
	} else {
		m.value += m.Alpha * (float64(v) - m.value)
	}
	m.measurementsCount++
	return T(m.value)
}

func (m *EMA[T]) InitPeriod() int64 {
	return int64(m.period)
}

func (m *EMA[T]) Valid() bool {
	m.locker.Lock()
	defer m.locker.Unlock()
	return m.measurementsCount >= m.period
}
