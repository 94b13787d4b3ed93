// source.go defines the contract of an asynchronous frame source.

// Package source defines how frames are requested from an external decoder:
// a request is submitted by index and its outcome is delivered through a
// FrameHandle, either by waiting on it or via a continuation.
package source

import (
	"context"

	"github.com/xaionaro-go/framebench/types"
)

// Frame is the decoded payload; its content is opaque to the benchmark.
type Frame = any

// AsyncFrameSource decodes frames on its own goroutines.
//
// RequestFrame must not block on the decoding itself. The caller limits the
// amount of concurrently outstanding requests; a source is not required to
// handle more than that.
type AsyncFrameSource interface {
	RequestFrame(ctx context.Context, index types.FrameIndex) FrameHandle
}

// FrameHandle is a future of a single frame request. Handles are identified
// by their Index, so any type (comparable or not) may implement it.
type FrameHandle interface {
	Index() types.FrameIndex

	// Done is closed when the request is resolved.
	Done() <-chan struct{}

	// Result returns the outcome; it is valid only after Done is closed.
	// A non-nil error is an ErrDecode.
	Result() (Frame, error)

	// OnDone registers a continuation which is called exactly once, after the
	// request is resolved. If it is already resolved, the callback is called
	// immediately on the calling goroutine.
	OnDone(func(FrameHandle))
}

// CacheClearer is implemented by sources which keep already decoded frames.
type CacheClearer interface {
	ClearCache(ctx context.Context) error
}

// Wait blocks until the handle is resolved or ctx is done.
func Wait(ctx context.Context, h FrameHandle) (Frame, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-h.Done():
		return h.Result()
	}
}
