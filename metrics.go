package framebench

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MetricsRecorder receives the events of benchmark runs; see package metrics
// for the Prometheus implementation.
type MetricsRecorder interface {
	RunStarted(ctx context.Context, runID uuid.UUID, params Params)
	FrameRequested(ctx context.Context)
	FrameCompleted(ctx context.Context, failed bool, latency time.Duration)

	// FrameDiscarded is called for a request resolved after its run was
	// aborted; its result is not accounted anywhere else.
	FrameDiscarded(ctx context.Context)
	RunEnded(ctx context.Context, result *Result)
}

type noopMetrics struct{}

var _ MetricsRecorder = noopMetrics{}

func (noopMetrics) RunStarted(context.Context, uuid.UUID, Params)       {}
func (noopMetrics) FrameRequested(context.Context)                      {}
func (noopMetrics) FrameCompleted(context.Context, bool, time.Duration) {}
func (noopMetrics) FrameDiscarded(context.Context)                      {}
func (noopMetrics) RunEnded(context.Context, *Result)                   {}
