package codec

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Protobuf is a Codec for generated message types. Decode needs a
// constructor because T is a pointer type. With JSON set, messages use the
// canonical protobuf JSON mapping instead of the wire format.
type Protobuf[T proto.Message] struct {
	new  func() T // e.g. func() *structpb.Struct { return &structpb.Struct{} }
	json bool
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

// NewProtoJSON is NewProtobuf writing protojson text with proto field names.
func NewProtoJSON[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor, json: true}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	if c.json {
		return protojson.MarshalOptions{UseProtoNames: true}.Marshal(v)
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	var err error
	if c.json {
		err = protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(b, m)
	} else {
		err = proto.Unmarshal(b, m)
	}
	return m, err
}
