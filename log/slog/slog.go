// Package slog adapts a *slog.Logger to plainjson.Logger.
package slog

import (
	"context"
	stdslog "log/slog"
	"sort"

	"github.com/unkn0wn-root/plainjson"
)

var _ plainjson.Logger = Logger{}

// Logger writes entries through L. A nil L uses slog.Default().
type Logger struct{ L *stdslog.Logger }

func (s Logger) Debug(msg string, f plainjson.Fields) { s.log(stdslog.LevelDebug, msg, f) }
func (s Logger) Info(msg string, f plainjson.Fields)  { s.log(stdslog.LevelInfo, msg, f) }
func (s Logger) Warn(msg string, f plainjson.Fields)  { s.log(stdslog.LevelWarn, msg, f) }
func (s Logger) Error(msg string, f plainjson.Fields) { s.log(stdslog.LevelError, msg, f) }

func (s Logger) log(lvl stdslog.Level, msg string, f plainjson.Fields) {
	l := s.L
	if l == nil {
		l = stdslog.Default()
	}
	ctx := context.Background()
	if !l.Enabled(ctx, lvl) {
		return
	}
	l.LogAttrs(ctx, lvl, msg, attrs(f)...)
}

func attrs(f plainjson.Fields) []stdslog.Attr {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]stdslog.Attr, 0, len(f))
	for _, k := range keys {
		out = append(out, stdslog.Any(k, f[k]))
	}
	return out
}
