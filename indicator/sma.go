package indicator

import (
	"sync"
)

// SMA is the simple moving average over the last n measurements.
type SMA[T Number] struct {
	values            []float64
	sum               float64
	curIdx            int
	measurementsCount int
	locker            sync.Mutex
}

var _ MovingAverage[float64] = (*SMA[float64])(nil)

func NewSMA[T Number](n int) *SMA[T] {
	return &SMA[T]{
		values: make([]float64, n),
	}
}

func (m *SMA[T]) Update(v T) T {
	m.locker.Lock()
	defer m.locker.Unlock()

	m.sum -= m.values[m.curIdx]
	m.values[m.curIdx] = float64(v)
	m.sum += float64(v)
	m.curIdx = (m.curIdx + 1) % len(m.values)
	m.measurementsCount++

	n := min(m.measurementsCount, len(m.values))
	return T(m.sum / float64(n))
}

func (m *SMA[T]) InitPeriod() int64 {
	return int64(len(m.values))
}

func (m *SMA[T]) Valid() bool {
	m.locker.Lock()
	defer m.locker.Unlock()
	return m.measurementsCount >= len(m.values)
}
