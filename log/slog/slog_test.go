package slog

import (
	"bytes"
	"encoding/json"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/plainjson"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewJSONHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo}))}

	l.Debug("hidden", nil)
	l.Info("info", plainjson.Fields{"b": "x", "a": 1})
	l.Error("error", nil)

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "info", got[0]["msg"])
	assert.Equal(t, "INFO", got[0]["level"])
	assert.Equal(t, float64(1), got[0]["a"])
	assert.Equal(t, "x", got[0]["b"])
	assert.Equal(t, "ERROR", got[1]["level"])
	assert.True(t, strings.Index(buf.String(), `"a":1`) < strings.Index(buf.String(), `"b":"x"`))
}

func TestCodecRecoveryLogged(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewJSONHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))}
	c := plainjson.New(plainjson.Options{Logger: l})

	type rec struct{ A int }
	_, err := plainjson.Decode[rec](c, `{"B":1}`)
	require.NoError(t, err)
	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, plainjson.ErrUnknownMember.Error(), got[0]["kind"])
	assert.Equal(t, "B", got[0]["member"])
}
