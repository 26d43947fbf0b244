package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// CBOR is a Codec that serializes values using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[struct{}] = CBOR[struct{}]{}

type CBOROptions struct {
	// Deterministic selects RFC 8949 core deterministic encoding, which keeps
	// bytes stable for content hashing. Otherwise the preferred unsorted
	// options are used.
	Deterministic bool

	// MaxNestedLevels bounds decode nesting. Zero keeps the library default (32).
	MaxNestedLevels int
}

// NewCBOR constructs a CBOR codec. Times are written as RFC3339Nano text,
// the closest match to plainjson's date-time strings.
func NewCBOR[V any](opts CBOROptions) (CBOR[V], error) {
	var eo cbor.EncOptions
	if opts.Deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	dm, err := cbor.DecOptions{MaxNestedLevels: opts.MaxNestedLevels}.DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables in tests and the benchmark harness.
func MustCBOR[V any](opts CBOROptions) CBOR[V] {
	c, err := NewCBOR[V](opts)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	err := c.dec.Unmarshal(b, &v)
	return v, err
}
