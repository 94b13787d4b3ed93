// promise.go implements FrameHandle as a resolve-once promise.

package source

import (
	"context"
	"errors"

	"github.com/xaionaro-go/framebench/logger"
	"github.com/xaionaro-go/framebench/types"
	"github.com/xaionaro-go/xsync"
)

type Promise struct {
	index     types.FrameIndex
	locker    xsync.Mutex
	done      chan struct{}
	resolved  bool
	frame     Frame
	err       error
	callbacks []func(FrameHandle)
}

var _ FrameHandle = (*Promise)(nil)

func NewPromise(index types.FrameIndex) *Promise {
	return &Promise{
		index: index,
		done:  make(chan struct{}),
	}
}

func (p *Promise) Index() types.FrameIndex {
	return p.index
}

func (p *Promise) Done() <-chan struct{} {
	return p.done
}

func (p *Promise) Result() (Frame, error) {
	return xsync.DoR2(xsync.WithNoLogging(context.TODO(), true), &p.locker, func() (Frame, error) {
		return p.frame, p.err
	})
}

// Resolve sets the outcome and runs the continuations. A non-nil err is
// wrapped into ErrDecode. It returns false if the promise was already resolved.
func (p *Promise) Resolve(
	ctx context.Context,
	frame Frame,
	err error,
) bool {
	if err != nil && !errors.As(err, &ErrDecode{}) {
		err = ErrDecode{Index: p.index, Err: err}
	}

	var callbacks []func(FrameHandle)
	ok := xsync.DoR1(xsync.WithNoLogging(ctx, true), &p.locker, func() bool {
		if p.resolved {
			return false
		}
		p.resolved = true
		p.frame, p.err = frame, err
		callbacks, p.callbacks = p.callbacks, nil
		close(p.done)
		return true
	})
	if !ok {
		logger.Debugf(ctx, "frame %s is already resolved", p.index)
		return false
	}
	for _, cb := range callbacks {
		cb(p)
	}
	return true
}

func (p *Promise) OnDone(callback func(FrameHandle)) {
	resolved := xsync.DoR1(xsync.WithNoLogging(context.TODO(), true), &p.locker, func() bool {
		if !p.resolved {
			p.callbacks = append(p.callbacks, callback)
		}
		return p.resolved
	})
	if resolved {
		callback(p)
	}
}

func (p *Promise) Wait(ctx context.Context) (Frame, error) {
	return Wait(ctx, p)
}
