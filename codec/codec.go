// Package codec adapts value serializers to one byte-oriented interface so
// persisted state can be stored in any format and the benchmark harness can
// time plainjson against other engines with the same call shape.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
