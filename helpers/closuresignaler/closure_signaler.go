// closure_signaler.go provides a one-shot signal for the end of a run or a drain.

// Package closuresignaler provides a one-shot broadcast signal which can be
// awaited by any amount of goroutines.
package closuresignaler

import (
	"context"
	"sync"

	"github.com/xaionaro-go/framebench/logger"
)

type ClosureSignaler struct {
	closeOnce sync.Once
	c         chan struct{}
}

func New() *ClosureSignaler {
	return &ClosureSignaler{
		c: make(chan struct{}),
	}
}

func (c *ClosureSignaler) CloseChan() <-chan struct{} {
	return c.c
}

// Close is idempotent.
func (c *ClosureSignaler) Close(ctx context.Context) {
	logger.Tracef(ctx, "Close")
	defer func() { logger.Tracef(ctx, "/Close") }()
	c.closeOnce.Do(func() {
		close(c.c)
	})
}

func (c *ClosureSignaler) IsClosed() bool {
	select {
	case <-c.c:
		return true
	default:
		return false
	}
}

// Wait blocks until the signaler is closed or ctx is done.
func (c *ClosureSignaler) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.c:
		return nil
	}
}
