// Package wire frames persisted documents for byte stores. The frame carries
// the payload's xxhash so readers can reject torn or foreign values and
// writers can skip rewriting identical content.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"
)

const (
	version byte = 1
	kindDoc byte = 1
	hdrLen       = 4 + 1 + 1 + 8 + 4
)

var (
	ErrCorrupt = errors.New("plainjson: corrupt document frame")
	magic4     = [...]byte{'P', 'J', 'S', 'N'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Hash is the content hash stored in frames.
func Hash(payload []byte) uint64 { return xxhash.Sum64(payload) }

// EncodeDoc frames payload:
//
//	magic(4) | ver(1) | kind(1=doc) | hash(u64 be) | vlen(u32 be) | payload(vlen)
func EncodeDoc(payload []byte) []byte {
	b := make([]byte, hdrLen, hdrLen+len(payload))
	copy(b, magic4[:])
	b[4] = version
	b[5] = kindDoc
	binary.BigEndian.PutUint64(b[6:14], Hash(payload))
	binary.BigEndian.PutUint32(b[14:18], uint32(len(payload)))
	return append(b, payload...)
}

// DecodeDoc validates a frame and returns its hash and payload. The payload
// aliases b. Trailing bytes and hash mismatches are ErrCorrupt.
func DecodeDoc(b []byte) (hash uint64, payload []byte, err error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version || b[5] != kindDoc {
		return 0, nil, ErrCorrupt
	}
	hash = binary.BigEndian.Uint64(b[6:14])
	vlen := binary.BigEndian.Uint32(b[14:18])
	if uint64(vlen) != uint64(len(b)-hdrLen) {
		return 0, nil, ErrCorrupt
	}
	payload = b[hdrLen:]
	if Hash(payload) != hash {
		return 0, nil, ErrCorrupt
	}
	return hash, payload, nil
}
