package framebench

import (
	"context"
	"time"

	"github.com/xaionaro-go/framebench/logger"
	"github.com/xaionaro-go/framebench/source"
	"github.com/xaionaro-go/framebench/throughput"
	"github.com/xaionaro-go/xsync"
)

// dispatch is the only consumer of the results of a run. It lives until the
// run is finished and nothing of it is in flight anymore.
func (c *Controller) dispatch(
	ctx context.Context,
	r *run,
) {
	logger.Debugf(ctx, "dispatch")
	defer func() { logger.Debugf(ctx, "/dispatch") }()
	defer r.drained.Close(ctx)

	for {
		var h source.FrameHandle
		switch r.Params.Ordering {
		case OrderingSequenced:
			req, ok := xsync.DoR2(xsync.WithNoLogging(ctx, true), &c.locker, func() (inFlightRequest, bool) {
				return r.inFlight.Front()
			})
			if !ok {
				return
			}
			<-req.Handle.Done()
			h = req.Handle
		case OrderingUnsequenced:
			inFlight := xsync.DoR1(xsync.WithNoLogging(ctx, true), &c.locker, func() int {
				return r.inFlight.Len()
			})
			if inFlight == 0 {
				return
			}
			h = <-r.completions
		}

		result := xsync.DoR1(xsync.WithNoLogging(ctx, true), &c.locker, func() *Result {
			return c.onResolvedLocked(ctx, r, h)
		})
		if result != nil {
			c.notifyEnded(ctx, result)
		}
	}
}

func (c *Controller) onResolvedLocked(
	ctx context.Context,
	r *run,
	h source.FrameHandle,
) *Result {
	req, ok := r.inFlight.Remove(h.Index())
	if !ok {
		logger.Errorf(ctx, "internal error: frame %s was not requested", h.Index())
		return nil
	}
	if !r.running {
		logger.Tracef(ctx, "discarding frame %s of a finished run", h.Index())
		c.config.Metrics.FrameDiscarded(ctx)
		return nil
	}

	_, err := h.Result()
	failed := err != nil
	if failed {
		logger.Warnf(ctx, "unable to get frame %s: %v", h.Index(), err)
		r.framesFailed++
		r.errors = append(r.errors, err)
	}
	c.Tracker.OnFrameCompleted(ctx, failed)
	c.config.Metrics.FrameCompleted(ctx, failed, c.config.Clock.Since(req.RequestedAt))
	r.framesRemaining--

	if r.framesRemaining == 0 {
		return c.finishLocked(ctx, r, StateCompleted)
	}
	if r.hasNext() {
		c.issueLocked(ctx, r)
	}
	return nil
}

// reportProgress periodically feeds the OnProgress observers and sends one
// final snapshot once the run is finished.
func (c *Controller) reportProgress(
	ctx context.Context,
	r *run,
) {
	logger.Debugf(ctx, "reportProgress")
	defer func() { logger.Debugf(ctx, "/reportProgress") }()

	notify := func(s throughput.Snapshot) {
		for _, cb := range c.config.OnProgress {
			cb(ctx, s)
		}
	}

	var tickerC <-chan time.Time
	if c.config.RefreshInterval > 0 {
		t := c.config.Clock.Ticker(c.config.RefreshInterval)
		defer t.Stop()
		tickerC = t.C
	}
	for {
		select {
		case <-r.ended.CloseChan():
			// the tracker may already belong to the next run
			notify(r.result.Stats)
			return
		case <-tickerC:
			notify(c.Tracker.Snapshot(ctx))
		}
	}
}
