package config

import (
	"Inskape/expectfail/core/exception"
	"Inskape/expectfail/internal/global"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelKey      = "log_level"
	maxChainDepthKey = "max_chain_depth"
	stackTracesKey   = "stack_traces"
)

type Config struct {
	LogLevel      zapcore.Level `mapstructure:"log_level"`
	MaxChainDepth int           `mapstructure:"max_chain_depth" validate:"min=1,max=4096"`
	StackTraces   bool          `mapstructure:"stack_traces"`
}

var (
	validate  = validator.New()
	levelType = reflect.TypeOf(zapcore.Level(0))
)

func Default() Config {
	return Config{
		LogLevel:      global.DefaultLogLevel,
		MaxChainDepth: global.DefaultMaxChainDepth,
	}
}

// FromEnv reads the EXPECTFAIL_* environment variables on top of Default.
func FromEnv() (Config, error) {
	values := make(map[string]string)
	for key, env := range map[string]string{
		logLevelKey:      global.LogLevelEnv,
		maxChainDepthKey: global.MaxChainDepthEnv,
		stackTracesKey:   global.StackTracesEnv,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			values[key] = v
		}
	}
	return FromMap(values)
}

// FromMap decodes string values keyed by their mapstructure tag on top of
// Default.
func FromMap(values map[string]string) (Config, error) {
	cfg := Default()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(levelHook),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, exception.ErrInvalidConfig(err)
	}
	if err := decoder.Decode(values); err != nil {
		return Config{}, exception.ErrInvalidConfig(err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, exception.ErrInvalidConfig(err)
	}
	return cfg, nil
}

// Apply installs the process wide parts of the config.
func (c Config) Apply() {
	exception.EnableStackTraces(c.StackTraces)
}

func levelHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != levelType || from.Kind() != reflect.String {
		return data, nil
	}
	level, err := zapcore.ParseLevel(data.(string))
	if err != nil {
		return nil, exception.ErrInvalidLogLevel(err)
	}
	if !global.KnownLevel(level) {
		return nil, exception.ErrInvalidLogLevel().WithDetail(level.String())
	}
	return level, nil
}
