package source

import (
	"context"

	"github.com/xaionaro-go/framebench/types"
	"github.com/xaionaro-go/observability"
)

// FuncSource runs the decode function on a new goroutine for each request.
type FuncSource func(ctx context.Context, index types.FrameIndex) (Frame, error)

var _ AsyncFrameSource = (FuncSource)(nil)

func (fn FuncSource) RequestFrame(
	ctx context.Context,
	index types.FrameIndex,
) FrameHandle {
	p := NewPromise(index)
	observability.Go(ctx, func(ctx context.Context) {
		frame, err := fn(ctx, index)
		p.Resolve(ctx, frame, err)
	})
	return p
}
