package logger

import (
	"context"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/pkg/field"
	"github.com/facebookincubator/go-belt/tool/logger"
)

func FromCtx(ctx context.Context) Logger {
	return logger.FromCtx(ctx)
}

func CtxWithLogger(ctx context.Context, l Logger) context.Context {
	return logger.CtxWithLogger(ctx, l)
}

// CtxWithField attaches a structured field to every record logged with the
// returned context.
func CtxWithField(ctx context.Context, key string, value any) context.Context {
	return belt.WithField(ctx, field.Key(key), value)
}
