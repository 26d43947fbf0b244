// Package sloghooks logs persist.Hooks events through log/slog.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/plainjson/persist"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery uint64
	SkippedEvery  uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
	skippedCtr  atomic.Uint64
}

var _ persist.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Warn("persist.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) WriteSkipped(key string) {
	if h.l == nil || !sample(h.opts.SkippedEvery, &h.skippedCtr) {
		return
	}
	h.l.Debug("persist.write_skipped", "key", h.redact(key))
}

func (h *Hooks) WriteRejected(key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("persist.write_rejected", "key", h.redact(key))
}

func (h *Hooks) DecodeError(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("persist.decode_error",
		"key", h.redact(key),
		"err", err)
}
