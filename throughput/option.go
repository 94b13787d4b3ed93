package throughput

import (
	"time"

	"github.com/xaionaro-go/framebench/indicator"
)

const (
	DefaultSampleInterval = 100 * time.Millisecond
	DefaultSmoothingKind  = indicator.KindEMA
	DefaultSmoothingSpan  = 10
)

type config struct {
	SampleInterval time.Duration
	Smoother       func() indicator.MovingAverage[float64]
}

type Option interface {
	apply(*config)
}

type Options []Option

func (s Options) apply(cfg *config) {
	for _, opt := range s {
		opt.apply(cfg)
	}
}

func (s Options) config() config {
	cfg := config{
		SampleInterval: DefaultSampleInterval,
		Smoother: func() indicator.MovingAverage[float64] {
			m, _ := indicator.New[float64](DefaultSmoothingKind, DefaultSmoothingSpan)
			return m
		},
	}
	s.apply(&cfg)
	return cfg
}

// OptionSampleInterval is the minimal time span over which an instantaneous
// frame rate is measured before it is fed to the smoother.
type OptionSampleInterval time.Duration

func (opt OptionSampleInterval) apply(cfg *config) {
	cfg.SampleInterval = time.Duration(opt)
}

// OptionSmoother sets the factory of the moving average used for
// Snapshot.SmoothedFPS; a factory returning nil disables smoothing.
type OptionSmoother func() indicator.MovingAverage[float64]

func (opt OptionSmoother) apply(cfg *config) {
	cfg.Smoother = opt
}
