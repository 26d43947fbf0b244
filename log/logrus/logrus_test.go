package logrus

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/plainjson"
)

func TestLevelsAndFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.InfoLevel)
	l := New(base)

	l.Debug("hidden", nil)
	l.Info("info", plainjson.Fields{"a": 1})
	l.Warn("warn", plainjson.Fields{"err": errors.New("boom")})
	l.Error("error", nil)

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "info", entries[0].Message)
	assert.Equal(t, logrus.Fields{"a": 1}, entries[0].Data)
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.EqualError(t, entries[1].Data["err"].(error), "boom")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestNilEntryDiscards(t *testing.T) {
	assert.NotPanics(t, func() { Logger{}.Warn("x", nil) })
}

func TestCodecRecoveryLogged(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	c := plainjson.New(plainjson.Options{Logger: New(base)})

	_, err := plainjson.Decode[[]int](c, `[1,2`)
	require.NoError(t, err)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, plainjson.ErrMalformedInput.Error(), hook.LastEntry().Data["kind"])
}
