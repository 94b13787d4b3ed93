// prometheus.go exports the benchmark events as Prometheus metrics.

// Package metrics provides MetricsRecorder implementations.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xaionaro-go/framebench"
	"github.com/xaionaro-go/framebench/logger"
	"go.uber.org/atomic"
)

const namespace = "framebench"

type Prometheus struct {
	FramesRequested prometheus.Counter
	FramesCompleted *prometheus.CounterVec
	FramesDiscarded prometheus.Counter
	FrameLatency    prometheus.Histogram
	InFlight        prometheus.Gauge
	Runs            *prometheus.CounterVec
	LastRunFPS      prometheus.Gauge
	Running         prometheus.GaugeFunc

	running atomic.Bool
}

var _ framebench.MetricsRecorder = (*Prometheus)(nil)

// NewPrometheus creates the collectors and registers them at reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	m := &Prometheus{
		FramesRequested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_requested_total",
			Help:      "The amount of frames requested from the source.",
		}),
		FramesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_completed_total",
			Help:      "The amount of consumed frame results.",
		}, []string{"result"}),
		FramesDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_discarded_total",
			Help:      "The amount of frames resolved after their run was aborted.",
		}),
		FrameLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_latency_seconds",
			Help:      "Time from requesting a frame until its result is consumed.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frames_in_flight",
			Help:      "The amount of requested but not yet consumed frames.",
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "The amount of finished runs.",
		}, []string{"state"}),
		LastRunFPS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_fps",
			Help:      "The average frame rate of the last finished run.",
		}),
	}
	m.Running = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "running",
		Help:      "1 if a run is active.",
	}, func() float64 {
		if m.running.Load() {
			return 1
		}
		return 0
	})

	for _, c := range []prometheus.Collector{
		m.FramesRequested,
		m.FramesCompleted,
		m.FramesDiscarded,
		m.FrameLatency,
		m.InFlight,
		m.Runs,
		m.LastRunFPS,
		m.Running,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("unable to register a collector: %w", err)
		}
	}
	return m, nil
}

func (m *Prometheus) RunStarted(
	ctx context.Context,
	runID uuid.UUID,
	params framebench.Params,
) {
	logger.Debugf(ctx, "RunStarted(%s, %s)", runID, params)
	m.running.Store(true)
	m.InFlight.Set(0)
}

func (m *Prometheus) FrameRequested(ctx context.Context) {
	m.FramesRequested.Inc()
	m.InFlight.Inc()
}

func (m *Prometheus) FrameCompleted(
	ctx context.Context,
	failed bool,
	latency time.Duration,
) {
	m.InFlight.Dec()
	result := "ok"
	if failed {
		result = "failed"
	}
	m.FramesCompleted.WithLabelValues(result).Inc()
	m.FrameLatency.Observe(latency.Seconds())
}

func (m *Prometheus) FrameDiscarded(ctx context.Context) {
	m.InFlight.Dec()
	m.FramesDiscarded.Inc()
}

func (m *Prometheus) RunEnded(
	ctx context.Context,
	result *framebench.Result,
) {
	logger.Debugf(ctx, "RunEnded(%s)", result)
	m.running.Store(false)
	m.Runs.WithLabelValues(result.State.String()).Inc()
	m.LastRunFPS.Set(result.Stats.FPS)
}
