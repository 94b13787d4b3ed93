// logger.go provides the logging facade used across framebench.

// Package logger is a thin facade over the go-belt logger: the logger is
// carried in the context, so every call takes a ctx.
package logger

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

type Logger = logger.Logger
type Level = logger.Level

const (
	LevelError   = logger.LevelError
	LevelWarning = logger.LevelWarning
	LevelInfo    = logger.LevelInfo
	LevelDebug   = logger.LevelDebug
	LevelTrace   = logger.LevelTrace
)

func SetDefault(defaultLogger func() Logger) {
	logger.Default = defaultLogger
}

// Error is just a shorthand for Log(ctx, logger.LevelError, ...)
func Error(ctx context.Context, values ...any) {
	logger.Error(ctx, values...)
}

// Debugf is just a shorthand for Logf(ctx, logger.LevelDebug, ...)
func Debugf(ctx context.Context, format string, args ...any) {
	logger.Debugf(ctx, format, args...)
}

// Infof is just a shorthand for Logf(ctx, logger.LevelInfo, ...)
func Infof(ctx context.Context, format string, args ...any) {
	logger.Infof(ctx, format, args...)
}

// Warnf is just a shorthand for Logf(ctx, logger.LevelWarn, ...)
func Warnf(ctx context.Context, format string, args ...any) {
	logger.Warnf(ctx, format, args...)
}

// Errorf is just a shorthand for Logf(ctx, logger.LevelError, ...)
func Errorf(ctx context.Context, format string, args ...any) {
	logger.Errorf(ctx, format, args...)
}

// Fatalf is just a shorthand for Logf(ctx, logger.LevelFatal, ...)
//
// Be aware: Fatal level also triggers an `os.Exit`.
func Fatalf(ctx context.Context, format string, args ...any) {
	logger.Fatalf(ctx, format, args...)
}
