// tracker.go implements the running throughput statistics of a benchmark run.

// Package throughput measures how fast frames are completed.
package throughput

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/xaionaro-go/framebench/indicator"
	"github.com/xaionaro-go/framebench/logger"
	"github.com/xaionaro-go/framebench/types"
	"github.com/xaionaro-go/xsync"
)

// Tracker counts completed frames and derives the frame rate.
//
// All methods are safe for concurrent use: counters are updated by the
// benchmark while Snapshot may be polled from anywhere, at any rate.
type Tracker struct {
	Clock  clock.Clock
	config config

	locker      xsync.Mutex
	started     bool
	running     bool
	startedAt   time.Time
	stoppedAt   time.Time
	total       types.FrameCount
	completed   types.FrameCount
	failed      types.FrameCount
	smoother    indicator.MovingAverage[float64]
	smoothedFPS float64
	sampleStart time.Time
	sampleCount int64
}

func New(
	clk clock.Clock,
	opts ...Option,
) *Tracker {
	if clk == nil {
		clk = clock.New()
	}
	return &Tracker{
		Clock:  clk,
		config: Options(opts).config(),
	}
}

// Start resets the counters and starts the timer.
func (t *Tracker) Start(
	ctx context.Context,
	total types.FrameCount,
) {
	logger.Debugf(ctx, "Start(%d)", total)
	t.locker.Do(ctx, func() {
		now := t.Clock.Now()
		t.started = true
		t.running = true
		t.startedAt = now
		t.stoppedAt = time.Time{}
		t.total = total
		t.completed = 0
		t.failed = 0
		t.smoother = nil
		if t.config.Smoother != nil {
			t.smoother = t.config.Smoother()
		}
		t.smoothedFPS = 0
		t.sampleStart = now
		t.sampleCount = 0
	})
}

// OnFrameCompleted accounts one more finished frame (successful or not) and
// returns how many frames remain. It is ignored if the tracker is stopped.
func (t *Tracker) OnFrameCompleted(
	ctx context.Context,
	failed bool,
) types.FrameCount {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &t.locker, func() types.FrameCount {
		if !t.running {
			return t.total - t.completed
		}
		t.completed++
		if failed {
			t.failed++
		}
		t.sampleLocked(t.Clock.Now())
		return t.total - t.completed
	})
}

func (t *Tracker) sampleLocked(now time.Time) {
	t.sampleCount++
	dt := now.Sub(t.sampleStart)
	if dt < t.config.SampleInterval || dt <= 0 {
		return
	}
	fps := float64(t.sampleCount) / dt.Seconds()
	if t.smoother != nil {
		fps = t.smoother.Update(fps)
	}
	t.smoothedFPS = fps
	t.sampleStart = now
	t.sampleCount = 0
}

// Stop freezes the timer; Snapshot keeps reporting the values as of the stop.
func (t *Tracker) Stop(ctx context.Context) {
	logger.Debugf(ctx, "Stop")
	t.locker.Do(ctx, func() {
		if !t.running {
			return
		}
		t.running = false
		t.stoppedAt = t.Clock.Now()
	})
}

func (t *Tracker) IsRunning(ctx context.Context) bool {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &t.locker, func() bool {
		return t.running
	})
}

func (t *Tracker) Snapshot(ctx context.Context) Snapshot {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &t.locker, func() Snapshot {
		s := Snapshot{
			FramesCompleted: t.completed,
			FramesFailed:    t.failed,
			FramesTotal:     t.total,
			Running:         t.running,
		}
		switch {
		case !t.started:
		case t.running:
			s.Elapsed = t.Clock.Now().Sub(t.startedAt)
		default:
			s.Elapsed = t.stoppedAt.Sub(t.startedAt)
		}
		if s.Elapsed > 0 {
			s.FPS = float64(s.FramesCompleted) / s.Elapsed.Seconds()
		}
		s.SmoothedFPS = t.smoothedFPS
		if t.smoothedFPS == 0 {
			s.SmoothedFPS = s.FPS
		}
		if s.FPS > 0 {
			s.ETA = time.Duration(float64(s.FramesRemaining()) / s.FPS * float64(time.Second))
		}
		return s
	})
}
