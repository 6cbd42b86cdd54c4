package clog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewNilDefaultsToNop(t *testing.T) {
	l := New(nil)
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Debug("unobserved") })
}

func TestNilLoggerMethodsAreNoOps(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Debug("ignored")
		l.Warn("ignored")
	})
}

func TestNilLoggerNamedReturnsUsableLogger(t *testing.T) {
	var l *Logger
	named := l.Named("child")
	require.NotNil(t, named)
	assert.NotPanics(t, func() { named.Debug("ignored") })
}

func TestLoggerDebugEmitsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Debug("tokenizer recovered", zap.Int("start", 3), zap.Int("end", 5))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.DebugLevel, entry.Level)
	assert.Equal(t, "tokenizer recovered", entry.Message)
}

func TestNamedScopesLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core)).Named("selectors")

	l.Warn("invalid selector list")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "selectors", logs.All()[0].LoggerName)
}
