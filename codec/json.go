package codec

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"

	"github.com/unkn0wn-root/plainjson"
)

// JSON is a Codec backed by plainjson. The zero value uses plainjson's
// package defaults (null/default members omitted, lenient decoding).
// Set C to use a configured *plainjson.Codec; a strict C makes Decode
// return its *plainjson.DecodeError.
type JSON[V any] struct {
	C *plainjson.Codec
}

var _ Codec[struct{}] = JSON[struct{}]{}

func (c JSON[V]) Encode(v V) ([]byte, error) {
	if c.C == nil {
		return []byte(plainjson.ToJSON(v)), nil
	}
	return c.C.AppendJSON(nil, v), nil
}

func (c JSON[V]) Decode(b []byte) (V, error) {
	if c.C == nil {
		return plainjson.FromJSON[V](string(b)), nil
	}
	return plainjson.Decode[V](c.C, string(b))
}

// StdJSON is a Codec backed by encoding/json.
type StdJSON[V any] struct{}

func (StdJSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (StdJSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}

// GoJSON is a Codec backed by goccy/go-json, a drop-in encoding/json
// replacement.
type GoJSON[V any] struct{}

func (GoJSON[V]) Encode(v V) ([]byte, error) { return gojson.Marshal(v) }
func (GoJSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := gojson.Unmarshal(b, &v)
	return v, err
}
