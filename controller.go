// controller.go implements the benchmark run lifecycle.

// Package framebench measures how fast an asynchronous frame source delivers
// a range of frames while keeping a bounded amount of requests in flight.
package framebench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xaionaro-go/framebench/helpers/closuresignaler"
	"github.com/xaionaro-go/framebench/logger"
	"github.com/xaionaro-go/framebench/source"
	"github.com/xaionaro-go/framebench/throughput"
	"github.com/xaionaro-go/framebench/types"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/xcontext"
	"github.com/xaionaro-go/xsync"
)

// Controller runs benchmarks against a single source, one run at a time.
type Controller struct {
	Source  source.AsyncFrameSource
	Tracker *throughput.Tracker
	config  config

	startLocker xsync.Mutex
	locker      xsync.Mutex
	state       State
	run         *run
	lastResult  *Result
}

type run struct {
	ID              uuid.UUID
	Params          Params
	StartedAt       time.Time
	inFlight        inFlightQueue
	nextIndex       types.FrameIndex
	framesRequested types.FrameCount
	framesRemaining types.FrameCount
	framesFailed    types.FrameCount
	errors          []error
	running         bool
	completions     chan source.FrameHandle
	ended           *closuresignaler.ClosureSignaler
	drained         *closuresignaler.ClosureSignaler
	result          *Result
}

func newRun(params Params) *run {
	return &run{
		ID:              uuid.New(),
		Params:          params,
		inFlight:        newInFlightQueue(params.Concurrency),
		nextIndex:       params.Range.Start,
		framesRemaining: params.Range.Total(),
		completions:     make(chan source.FrameHandle, params.Concurrency),
		ended:           closuresignaler.New(),
		drained:         closuresignaler.New(),
	}
}

func (r *run) hasNext() bool {
	return r.framesRequested < r.Params.Range.Total()
}

func New(
	src source.AsyncFrameSource,
	opts ...Option,
) *Controller {
	cfg := Options(opts).config()
	return &Controller{
		Source:  src,
		Tracker: throughput.New(cfg.Clock, cfg.TrackerOptions...),
		config:  cfg,
	}
}

func (c *Controller) String() string {
	return fmt.Sprintf("framebench(%v)", c.Source)
}

func (c *Controller) State(ctx context.Context) State {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &c.locker, func() State {
		return c.state
	})
}

// Snapshot returns the current throughput statistics; it may be called at
// any rate from any goroutine.
func (c *Controller) Snapshot(ctx context.Context) throughput.Snapshot {
	return c.Tracker.Snapshot(ctx)
}

// Result returns the outcome of the last finished run, or nil.
func (c *Controller) Result(ctx context.Context) *Result {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &c.locker, func() *Result {
		return c.lastResult
	})
}

// Start validates the parameters, runs the prep hook and then issues the
// first requests; the rest of the run proceeds in the background.
//
// If the previous run was aborted, Start first waits until all of its
// requests are resolved, so that runs never overlap on the source.
func (c *Controller) Start(
	ctx context.Context,
	params Params,
) (_err error) {
	logger.Tracef(ctx, "Start(%s)", params)
	defer func() { logger.Tracef(ctx, "/Start(%s): %v", params, _err) }()

	if err := params.validate(); err != nil {
		return err
	}

	return xsync.DoR1(ctx, &c.startLocker, func() error {
		return c.start(ctx, params)
	})
}

func (c *Controller) start(
	ctx context.Context,
	params Params,
) error {
	prev, err := xsync.DoR2(ctx, &c.locker, func() (*run, error) {
		if c.state == StateRunning {
			return nil, ErrInvalidState{Operation: "start", State: c.state}
		}
		return c.run, nil
	})
	if err != nil {
		return err
	}

	if prev != nil && !prev.drained.IsClosed() {
		logger.Debugf(ctx, "waiting for the requests of run %s to drain", prev.ID)
		if err := prev.drained.Wait(ctx); err != nil {
			return fmt.Errorf("unable to wait for the previous run to drain: %w", err)
		}
	}

	if c.config.PrepHook != nil {
		if err := c.config.PrepHook(ctx); err != nil {
			return ErrPrep{Err: err}
		}
	}

	r := newRun(params)
	runCtx := logger.CtxWithField(xcontext.DetachDone(ctx), "run_id", r.ID.String())
	logger.Debugf(runCtx, "starting run %s with %s", r.ID, params)

	c.locker.Do(ctx, func() {
		r.StartedAt = c.config.Clock.Now()
		c.Tracker.Start(runCtx, params.Range.Total())
		c.config.Metrics.RunStarted(runCtx, r.ID, params)
		r.running = true
		for r.hasNext() && !r.inFlight.IsFull() {
			c.issueLocked(runCtx, r)
		}
		c.run = r
		c.state = StateRunning
	})

	observability.Go(runCtx, func(ctx context.Context) {
		c.dispatch(ctx, r)
	})
	if len(c.config.OnProgress) > 0 {
		observability.Go(runCtx, func(ctx context.Context) {
			c.reportProgress(ctx, r)
		})
	}
	return nil
}

func (c *Controller) issueLocked(
	ctx context.Context,
	r *run,
) {
	index := r.nextIndex
	r.nextIndex = index.Next()
	r.framesRequested++

	logger.Tracef(ctx, "requesting frame %s", index)
	h := c.Source.RequestFrame(ctx, index)
	r.inFlight.Push(inFlightRequest{
		Handle:      h,
		RequestedAt: c.config.Clock.Now(),
	})
	c.config.Metrics.FrameRequested(ctx)

	if r.Params.Ordering == OrderingUnsequenced {
		// never blocks: the channel has a slot per in-flight request
		completions := r.completions
		h.OnDone(func(h source.FrameHandle) {
			completions <- h
		})
	}
}

// Abort stops issuing new requests and finalizes the run; it is a no-op
// unless a run is active. Already submitted requests are not cancelled: they
// are drained in the background and their results are discarded.
func (c *Controller) Abort(ctx context.Context) {
	logger.Tracef(ctx, "Abort")
	defer func() { logger.Tracef(ctx, "/Abort") }()

	result := xsync.DoR1(ctx, &c.locker, func() *Result {
		if c.state != StateRunning {
			return nil
		}
		return c.finishLocked(ctx, c.run, StateAborted)
	})
	if result == nil {
		logger.Debugf(ctx, "not running, nothing to abort")
		return
	}
	c.notifyEnded(ctx, result)
}

// Wait blocks until the current run is finished and all of its requests are
// resolved. It returns nil if nothing was ever started.
func (c *Controller) Wait(ctx context.Context) (*Result, error) {
	r := xsync.DoR1(ctx, &c.locker, func() *run {
		return c.run
	})
	if r == nil {
		return nil, nil
	}
	if err := r.drained.Wait(ctx); err != nil {
		return nil, err
	}
	return r.result, nil
}

func (c *Controller) finishLocked(
	ctx context.Context,
	r *run,
	state State,
) *Result {
	r.running = false
	c.Tracker.Stop(ctx)
	c.state = state
	r.result = &Result{
		RunID:           r.ID,
		Params:          r.Params,
		State:           state,
		StartedAt:       r.StartedAt,
		Stats:           c.Tracker.Snapshot(ctx),
		FramesRequested: r.framesRequested,
		FramesFailed:    r.framesFailed,
		Errors:          r.errors,
	}
	c.lastResult = r.result
	r.ended.Close(ctx)
	return r.result
}

func (c *Controller) notifyEnded(
	ctx context.Context,
	result *Result,
) {
	logger.Infof(ctx, "run %s is %s: %s", result.RunID, result.State, result.Stats)
	c.config.Metrics.RunEnded(ctx, result)
	switch result.State {
	case StateCompleted:
		for _, cb := range c.config.OnCompleted {
			cb(ctx, result)
		}
	case StateAborted:
		for _, cb := range c.config.OnAborted {
			cb(ctx, result)
		}
	}
}
