package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func mustDecodeDoc(t *testing.T, b []byte) (uint64, []byte) {
	t.Helper()
	h, p, err := DecodeDoc(b)
	if err != nil {
		t.Fatalf("DecodeDoc error: %v", err)
	}
	return h, p
}

func TestDocRTEmptyAndNonEmpty(t *testing.T) {
	for _, payload := range [][]byte{nil, []byte(`{"a":1}`), {0, 1, 2, 3, 4}} {
		enc := EncodeDoc(payload)
		h, p := mustDecodeDoc(t, enc)
		if h != Hash(payload) {
			t.Fatalf("hash mismatch: got %x want %x", h, Hash(payload))
		}
		if !bytes.Equal(p, payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, payload)
		}
	}
}

func TestDocRejectsTrailingBytes(t *testing.T) {
	enc := EncodeDoc([]byte("x"))
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, _, err := DecodeDoc(enc); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on trailing bytes, got %v", err)
	}
}

func TestDocCorruptHeadersAndLengths(t *testing.T) {
	good := EncodeDoc([]byte("abc"))

	mutate := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), good...)
		return f(b)
	}
	cases := map[string][]byte{
		"short":     good[:hdrLen-1],
		"magic":     mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
		"version":   mutate(func(b []byte) []byte { b[4] = 9; return b }),
		"kind":      mutate(func(b []byte) []byte { b[5] = 9; return b }),
		"truncated": good[:len(good)-1],
		"length": mutate(func(b []byte) []byte {
			binary.BigEndian.PutUint32(b[14:18], 1<<31)
			return b
		}),
		"payload flip": mutate(func(b []byte) []byte { b[len(b)-1] ^= 0xFF; return b }),
		"foreign":      []byte(`{"not":"framed"}`),
	}
	for name, b := range cases {
		if _, _, err := DecodeDoc(b); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
	}
}
