// Package logrus adapts a *logrus.Entry to plainjson.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/plainjson"
)

var _ plainjson.Logger = Logger{}

// Logger writes entries through E. A nil E discards everything.
type Logger struct{ E *logrus.Entry }

func New(l *logrus.Logger) Logger { return Logger{E: logrus.NewEntry(l)} }

func (l Logger) Debug(msg string, f plainjson.Fields) { l.log(logrus.DebugLevel, msg, f) }
func (l Logger) Info(msg string, f plainjson.Fields)  { l.log(logrus.InfoLevel, msg, f) }
func (l Logger) Warn(msg string, f plainjson.Fields)  { l.log(logrus.WarnLevel, msg, f) }
func (l Logger) Error(msg string, f plainjson.Fields) { l.log(logrus.ErrorLevel, msg, f) }

func (l Logger) log(lvl logrus.Level, msg string, f plainjson.Fields) {
	if l.E == nil || !l.E.Logger.IsLevelEnabled(lvl) {
		return
	}
	e := l.E
	if len(f) > 0 {
		e = e.WithFields(logrus.Fields(f))
	}
	e.Log(lvl, msg)
}
