package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "%Y-%m-%d %H:%M:%S", cfg.Format)
	assert.Equal(t, -1, cfg.PivotYear)
	assert.Equal(t, "", cfg.ConfigPath)
	assert.Equal(t, LogLevelError, cfg.LogLevel)
	assert.Equal(t, LogFormatConsole, cfg.LogFormat)
	assert.Equal(t, 4, cfg.Workers)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("STRPTIME_FORMAT", "%d.%m.%Y")
	t.Setenv("STRPTIME_PIVOT_YEAR", "30")
	t.Setenv("STRPTIME_CONFIG", "/etc/strptime.yaml")
	t.Setenv("STRPTIME_LOG_LEVEL", "debug")
	t.Setenv("STRPTIME_LOG_FORMAT", "json")
	t.Setenv("STRPTIME_WORKERS", "16")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, &Env{
		Format:     "%d.%m.%Y",
		PivotYear:  30,
		ConfigPath: "/etc/strptime.yaml",
		LogLevel:   LogLevelDebug,
		LogFormat:  LogFormatJSON,
		Workers:    16,
	}, cfg)
}

func TestFromEnvInvalid(t *testing.T) {
	t.Setenv("STRPTIME_WORKERS", "0")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("STRPTIME_WORKERS", "many")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogLevelWarn, LogFormatJSON)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	logger, err = NewLogger(LogLevelDebug, LogFormatConsole)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("trace", LogFormatConsole)
	assert.Error(t, err)
	_, err = NewLogger(LogLevelInfo, "xml")
	assert.Error(t, err)
}
