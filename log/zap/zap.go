// Package zap adapts a *zap.Logger to plainjson.Logger.
package zap

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/plainjson"
)

var _ plainjson.Logger = Logger{}

// Logger writes entries through L. A nil L discards everything.
type Logger struct{ L *zap.Logger }

func New(l *zap.Logger) Logger { return Logger{L: l} }

func (z Logger) Debug(msg string, f plainjson.Fields) { z.log(zapcore.DebugLevel, msg, f) }
func (z Logger) Info(msg string, f plainjson.Fields)  { z.log(zapcore.InfoLevel, msg, f) }
func (z Logger) Warn(msg string, f plainjson.Fields)  { z.log(zapcore.WarnLevel, msg, f) }
func (z Logger) Error(msg string, f plainjson.Fields) { z.log(zapcore.ErrorLevel, msg, f) }

func (z Logger) log(lvl zapcore.Level, msg string, f plainjson.Fields) {
	if z.L == nil {
		return
	}
	// fields are only built for enabled levels
	if ce := z.L.Check(lvl, msg); ce != nil {
		ce.Write(fields(f)...)
	}
}

func fields(f plainjson.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
