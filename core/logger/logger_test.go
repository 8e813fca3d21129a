package logger_test

import (
	"testing"

	"devserver/core/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewDebugLevel(t *testing.T) {
	l, err := logger.New(&logger.Config{Level: "debug", Format: "console"})

	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRespectsConfiguredLevel(t *testing.T) {
	l, err := logger.New(&logger.Config{Level: "warn", Format: "json"})

	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	l, err := logger.New(&logger.Config{Level: "bogus", Format: "json"})

	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
