// Package asynchook moves persist.Hooks calls off the caller's goroutine.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{SkippedEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	p, _ := persist.New[Settings](persist.Options[Settings]{
//	    Store: &persist.FileStore{Dir: dir},
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/plainjson/persist"
)

type Hooks struct {
	inner   persist.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Uint64
}

var _ persist.Hooks = (*Hooks)(nil)

func New(inner persist.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events raised after
// Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded on a full queue.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	defer func() {
		if recover() != nil { // send on closed queue
			h.dropped.Add(1)
		}
	}()
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) SelfHeal(k, r string)   { h.try(func() { h.inner.SelfHeal(k, r) }) }
func (h *Hooks) WriteSkipped(k string)  { h.try(func() { h.inner.WriteSkipped(k) }) }
func (h *Hooks) WriteRejected(k string) { h.try(func() { h.inner.WriteRejected(k) }) }
func (h *Hooks) DecodeError(k string, err error) {
	h.try(func() { h.inner.DecodeError(k, err) })
}
