package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestGet_FallsBackToNop(t *testing.T) {
	prev := Get()
	Set(nil)
	t.Cleanup(func() { Set(prev) })

	l := Get()
	require.NotNil(t, l)
	assert.NotPanics(t, func() { Info("dropped") })
}

func TestGlobalHelpersWriteToInstalledLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Get()
	Set(&Logger{zap: zap.New(core)})
	t.Cleanup(func() { Set(prev) })

	Debug("debugging", zap.Int("n", 1))
	Get().With(zap.String("service", "test")).Warn("careful")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "debugging", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "test", entries[1].ContextMap()["service"])
}

func TestNew_BuildsForEachEnv(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		l, err := New(env, "info")
		require.NoError(t, err, env)
		assert.NotNil(t, l)
	}
}
