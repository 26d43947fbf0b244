package zap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/plainjson"
)

func TestLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := New(zap.New(core))

	l.Debug("hidden", plainjson.Fields{"a": 1})
	l.Info("info", plainjson.Fields{"b": "x", "a": 1})
	l.Warn("warn", plainjson.Fields{"err": errors.New("boom")})
	l.Error("error", nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "info", entries[0].Message)
	assert.Equal(t, map[string]any{"a": int64(1), "b": "x"}, entries[0].ContextMap())
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["err"])
	assert.Empty(t, entries[2].Context)
}

func TestNilLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() { Logger{}.Error("x", plainjson.Fields{"k": "v"}) })
}

func TestCodecRecoveryLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := plainjson.New(plainjson.Options{Logger: New(zap.New(core))})

	_, err := plainjson.Decode[map[string]int](c, `{"a":"x"}`)
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, plainjson.ErrTypeMismatch.Error(), fields["kind"])
	assert.Equal(t, "map[string]int", fields["target"])
}
