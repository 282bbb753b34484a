package logging

import (
	"Inskape/expectfail/core/atomic"
	"Inskape/expectfail/internal/config"
	"Inskape/expectfail/internal/global"
	"sync"

	"go.uber.org/zap"
)

var (
	once         sync.Once
	globalLogger atomic.Value[*zap.Logger]
)

// New builds a production logger at the configured level.
func New(cfg config.Config, opts ...zap.Option) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level.SetLevel(cfg.LogLevel)
	zapCfg.Sampling = nil

	logger, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, err
	}
	return logger.With(
		zap.String("service", global.Name),
		zap.String("version", global.Version),
	), nil
}

// SetGlobal replaces the logger returned by Global and Named.
func SetGlobal(logger *zap.Logger) {
	once.Do(func() {})
	globalLogger.Store(logger)
}

// Global returns the process logger, built from the environment on first use.
func Global() *zap.Logger {
	once.Do(func() {
		cfg, cfgErr := config.FromEnv()
		if cfgErr != nil {
			cfg = config.Default()
		}
		cfg.Apply()

		logger, err := New(cfg)
		if err != nil {
			logger = zap.NewNop()
		}
		if cfgErr != nil {
			logger.Warn("ignoring invalid environment config", zap.Error(cfgErr))
		}
		globalLogger.Store(logger)
	})
	return globalLogger.Load()
}

func Named(name string) *zap.Logger {
	return Global().Named(name)
}
