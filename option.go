package framebench

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/xaionaro-go/framebench/throughput"
)

type config struct {
	Clock           clock.Clock
	PrepHook        PrepHook
	RefreshInterval time.Duration
	TrackerOptions  throughput.Options
	Metrics         MetricsRecorder
	OnProgress      []func(context.Context, throughput.Snapshot)
	OnCompleted     []func(context.Context, *Result)
	OnAborted       []func(context.Context, *Result)
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
		Clock:   clock.New(),
		Metrics: noopMetrics{},
	}
	s.apply(&cfg)
	return cfg
}

type OptionClock struct {
	clock.Clock
}

func (opt OptionClock) apply(cfg *config) {
	cfg.Clock = opt.Clock
}

// OptionPrepHook is executed by Start before the timer starts.
type OptionPrepHook PrepHook

func (opt OptionPrepHook) apply(cfg *config) {
	cfg.PrepHook = PrepHook(opt)
}

// OptionRefreshInterval enables periodic OnProgress notifications while a run
// is active; zero disables them (a final notification is still sent).
type OptionRefreshInterval time.Duration

func (opt OptionRefreshInterval) apply(cfg *config) {
	cfg.RefreshInterval = time.Duration(opt)
}

type OptionTracker throughput.Options

func (opt OptionTracker) apply(cfg *config) {
	cfg.TrackerOptions = append(cfg.TrackerOptions, opt...)
}

type OptionMetrics struct {
	MetricsRecorder
}

func (opt OptionMetrics) apply(cfg *config) {
	cfg.Metrics = opt.MetricsRecorder
}

// OptionOnProgress may be given multiple times; observers are called from a
// dedicated goroutine, never under the controller lock.
type OptionOnProgress func(context.Context, throughput.Snapshot)

func (opt OptionOnProgress) apply(cfg *config) {
	cfg.OnProgress = append(cfg.OnProgress, opt)
}

// OptionOnCompleted is called from the dispatching goroutine before the run
// is considered drained, so it must not wait for a new Start to return.
type OptionOnCompleted func(context.Context, *Result)

func (opt OptionOnCompleted) apply(cfg *config) {
	cfg.OnCompleted = append(cfg.OnCompleted, opt)
}

type OptionOnAborted func(context.Context, *Result)

func (opt OptionOnAborted) apply(cfg *config) {
	cfg.OnAborted = append(cfg.OnAborted, opt)
}
