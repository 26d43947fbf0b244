package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestHooks(opts Options) (*Hooks, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(l, opts), &buf
}

func TestEventsAreLoggedAndRedacted(t *testing.T) {
	h, buf := newTestHooks(Options{})
	h.SelfHeal("doc:ns:secret", "corrupt")
	h.WriteRejected("secret")
	h.DecodeError("secret", errors.New("boom"))
	h.WriteSkipped("secret")

	out := buf.String()
	if strings.Contains(out, "secret") {
		t.Fatalf("keys must be redacted: %s", out)
	}
	for _, want := range []string{"persist.self_heal", "reason=corrupt", "persist.write_rejected", "persist.decode_error", "err=boom", "persist.write_skipped"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}

func TestSamplingAndCustomRedactor(t *testing.T) {
	h, buf := newTestHooks(Options{SkippedEvery: 3, Redact: func(k string) string { return "k" }})
	for i := 0; i < 9; i++ {
		h.WriteSkipped("x")
	}
	if n := strings.Count(buf.String(), "persist.write_skipped"); n != 3 {
		t.Fatalf("expected 3 sampled entries, got %d", n)
	}
	if !strings.Contains(buf.String(), "key=k") {
		t.Fatalf("custom redactor not used: %s", buf.String())
	}
}

func TestNilLogger(t *testing.T) {
	h := New(nil, Options{})
	h.SelfHeal("k", "corrupt")
	h.WriteSkipped("k")
	h.WriteRejected("k")
	h.DecodeError("k", nil)
}
