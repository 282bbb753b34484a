package global

import (
	"slices"

	"go.uber.org/zap/zapcore"
)

// KnownLevel reports whether level is one of ZapLevels.
func KnownLevel(level zapcore.Level) bool {
	return slices.Contains(ZapLevels, level)
}

// Scope names the otel meter or tracer of a package.
func Scope(pkg string) string {
	return Name + ":" + pkg
}
