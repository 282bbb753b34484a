package global

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	Name    string = "expectfail"
	Version string = "0.1.0"
)

const (
	LogLevelEnv      string = "EXPECTFAIL_LOG_LEVEL"
	MaxChainDepthEnv string = "EXPECTFAIL_MAX_CHAIN_DEPTH"
	StackTracesEnv   string = "EXPECTFAIL_STACK_TRACES"
)

const (
	DefaultLogLevel      = zap.WarnLevel
	DefaultMaxChainDepth = 64
)

var (
	ZapLevels = []zapcore.Level{
		zap.DebugLevel,
		zap.InfoLevel,
		zap.WarnLevel,
		zap.ErrorLevel,
		zap.DPanicLevel,
		zap.PanicLevel,
		zap.FatalLevel,
	}
)
