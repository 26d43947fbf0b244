package util

import (
	"strings"
	"testing"
)

func TestDocKey(t *testing.T) {
	if got := DocKey("settings", "ui.json"); got != "doc:settings:ui.json" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("k", MaxRawKey+1)
	a, b := DocKey("ns", long), DocKey("ns", long+"x")
	if !strings.HasPrefix(a, "doc:ns:#") || len(a) != len("doc:ns:#")+32 {
		t.Fatalf("hashed key shape: %q", a)
	}
	if a == b {
		t.Fatalf("distinct long keys collided")
	}
	if a != DocKey("ns", long) {
		t.Fatalf("hashed key not deterministic")
	}
}
