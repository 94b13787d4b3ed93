package framebench

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/framebench/logger"
	"github.com/xaionaro-go/framebench/source"
)

// PrepHook is called by Start after the parameters are validated and before
// anything is timed or requested. An error aborts the start.
type PrepHook func(ctx context.Context) error

// PrepHookClearCache returns a PrepHook which drops the frames already cached
// by the source, so that every run measures actual decoding.
func PrepHookClearCache(clearer source.CacheClearer) PrepHook {
	return func(ctx context.Context) (_err error) {
		logger.Debugf(ctx, "clearing the frame cache")
		defer func() { logger.Debugf(ctx, "/clearing the frame cache: %v", _err) }()
		if err := clearer.ClearCache(ctx); err != nil {
			return fmt.Errorf("unable to clear the frame cache: %w", err)
		}
		return nil
	}
}

// PrepHooks combines hooks, executed in order until the first failure.
func PrepHooks(hooks ...PrepHook) PrepHook {
	return func(ctx context.Context) error {
		for idx, hook := range hooks {
			if hook == nil {
				continue
			}
			if err := hook(ctx); err != nil {
				return fmt.Errorf("prep hook #%d failed: %w", idx, err)
			}
		}
		return nil
	}
}
