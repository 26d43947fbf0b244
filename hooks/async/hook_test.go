package asynchook

import (
	"errors"
	"sync"
	"testing"

	"github.com/unkn0wn-root/plainjson/persist"
)

type recHooks struct {
	mu     sync.Mutex
	events []string
	block  chan struct{}
}

func (r *recHooks) add(ev string) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recHooks) SelfHeal(k, reason string)     { r.add("heal:" + k + ":" + reason) }
func (r *recHooks) WriteSkipped(k string)         { r.add("skip:" + k) }
func (r *recHooks) WriteRejected(k string)        { r.add("reject:" + k) }
func (r *recHooks) DecodeError(k string, _ error) { r.add("decode:" + k) }

var _ persist.Hooks = (*recHooks)(nil)

func TestEventsDeliveredBeforeClose(t *testing.T) {
	rec := &recHooks{}
	h := New(rec, 2, 16)
	h.SelfHeal("a", "corrupt")
	h.WriteSkipped("b")
	h.WriteRejected("c")
	h.DecodeError("d", errors.New("x"))
	h.Close()
	h.Close()

	if len(rec.events) != 4 {
		t.Fatalf("expected 4 events, got %v", rec.events)
	}
	h.WriteSkipped("late")
	if h.Dropped() != 1 {
		t.Fatalf("event after Close should be dropped, dropped=%d", h.Dropped())
	}
}

func TestFullQueueDrops(t *testing.T) {
	rec := &recHooks{block: make(chan struct{})}
	h := New(rec, 1, 1)
	for i := 0; i < 10; i++ {
		h.WriteSkipped("k")
	}
	// one event may be held by the worker, one in the queue
	if d := h.Dropped(); d < 8 {
		t.Fatalf("expected at least 8 drops, got %d", d)
	}
	close(rec.block)
	h.Close()
}
