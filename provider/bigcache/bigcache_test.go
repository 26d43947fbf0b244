package bigcache

import (
	"bytes"
	"context"
	"testing"
)

func TestProviderSetGetDel(t *testing.T) {
	ctx := context.Background()
	p, err := New(ctx, Config{Shards: 16})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close(ctx)

	if _, ok, err := p.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("miss expected, ok=%v err=%v", ok, err)
	}
	if ok, err := p.Set(ctx, "k", []byte(`{"a":1}`), 0); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(got, []byte(`{"a":1}`)) {
		t.Fatalf("Get: %q ok=%v err=%v", got, ok, err)
	}
	if p.Len() != 1 {
		t.Fatalf("Len: got %d", p.Len())
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del of missing key should be a no-op: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("key should be gone")
	}
}
