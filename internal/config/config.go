package config

import (
	"fmt"

	"go-simpler.org/env"
	"go.uber.org/zap"
)

// Env holds the defaults the strptime command reads from the environment.
// Flags given on the command line win over them.
type Env struct {
	// Format compiled when --format is not given
	Format string `env:"STRPTIME_FORMAT" default:"%Y-%m-%d %H:%M:%S"`
	// Pivot year for %y; negative means unset
	PivotYear int `env:"STRPTIME_PIVOT_YEAR" default:"-1"`
	// Path of a YAML or JSON options document
	ConfigPath string `env:"STRPTIME_CONFIG"`
	// Log level (debug, info, warn, error)
	LogLevel LogLevel `env:"STRPTIME_LOG_LEVEL" default:"error"`
	// Log encoding (console, json)
	LogFormat LogFormat `env:"STRPTIME_LOG_FORMAT" default:"console"`
	// Number of inputs parsed concurrently
	Workers int `env:"STRPTIME_WORKERS" default:"4"`
}

// FromEnv returns the defaults, overridden by any STRPTIME_* variables set.
func FromEnv() (*Env, error) {
	var cfg Env
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("STRPTIME_WORKERS must be positive, got %d", cfg.Workers)
	}
	return &cfg, nil
}

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (l LogLevel) zapLevel() (zap.AtomicLevel, error) {
	switch l {
	case LogLevelDebug:
		return zap.NewAtomicLevelAt(zap.DebugLevel), nil
	case LogLevelInfo:
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	case LogLevelWarn:
		return zap.NewAtomicLevelAt(zap.WarnLevel), nil
	case LogLevelError:
		return zap.NewAtomicLevelAt(zap.ErrorLevel), nil
	}
	return zap.AtomicLevel{}, fmt.Errorf("unexpected log level %s", l)
}

type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// NewLogger builds a stderr logger at the given level and encoding.
func NewLogger(level LogLevel, format LogFormat) (*zap.Logger, error) {
	atomicLevel, err := level.zapLevel()
	if err != nil {
		return nil, err
	}
	cfg := zap.Config{
		Level:             atomicLevel,
		Development:       false,
		DisableStacktrace: true,
		EncoderConfig:     zap.NewDevelopmentEncoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	switch format {
	case LogFormatConsole:
		cfg.Encoding = "console"
	case LogFormatJSON:
		cfg.Encoding = "json"
	default:
		return nil, fmt.Errorf("unexpected log format %s", format)
	}
	return cfg.Build()
}
