package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("got %v", err)
	}
}

func TestUnreachableServerIsAnErrorNotAMiss(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	p, err := New(Config{Client: client, CloseClient: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	if _, ok, err := p.Get(ctx, "k"); err == nil || ok {
		t.Fatalf("expected transport error, ok=%v err=%v", ok, err)
	}
	if err := p.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(ctx); err != nil {
		t.Fatalf("second Close should be a no-op: %v", err)
	}
}

func TestOversizedValueRejectedWithoutRoundTrip(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	p, err := New(Config{Client: client, MaxValueBytes: 4, CloseClient: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close(context.Background())

	ok, err := p.Set(context.Background(), "k", []byte("12345"), 0)
	if ok || err != nil {
		t.Fatalf("expected a local rejection, ok=%v err=%v", ok, err)
	}
}

func TestKeysArePrefixed(t *testing.T) {
	p, err := New(Config{Client: goredis.NewClient(&goredis.Options{}), Prefix: "app:prod:", CloseClient: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close(context.Background())
	if got := p.key("doc:ns:k"); got != "app:prod:doc:ns:k" {
		t.Fatalf("got %q", got)
	}
}
