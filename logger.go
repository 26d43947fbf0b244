package plainjson

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger; see log/zap, log/logrus and log/slog for adapters.
// The codec itself only emits Debug entries for inputs it recovered from.
// If Logger is nil in Options, logging is disabled.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
