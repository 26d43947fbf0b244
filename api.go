package plainjson

import (
	"errors"
	"reflect"
	"strings"
)

// DefaultMaxDepth bounds container nesting for both directions.
const DefaultMaxDepth = 1000

// ErrInvalidTarget is returned by UnmarshalInto for anything but a non-nil pointer.
var ErrInvalidTarget = errors.New("plainjson: target must be a non-nil pointer")

// Options configures a Codec. The zero value omits nil and zero members,
// keeps field names as declared and reads leniently.
type Options struct {
	// EmitNullOrDefault writes every record member, including nil and zero
	// ones. The default omits them.
	EmitNullOrDefault bool

	// Naming maps field names without a json tag to member names.
	Naming NamingPolicy

	// MaxDepth bounds container nesting. Default 1000.
	MaxDepth int

	// Strict makes the reader return the first recovered problem as a
	// *DecodeError. The decoded value is the same in both modes.
	Strict bool

	// Logger receives a Debug entry for every parse that recovered from a
	// problem. Default NopLogger.
	Logger Logger
}

// Codec is safe for concurrent use.
type Codec struct {
	ignore   bool
	naming   NamingPolicy
	maxDepth int
	strict   bool
	log      Logger
}

// New returns a Codec for opts, filling unset fields with their defaults.
func New(opts Options) *Codec {
	var log Logger = NopLogger{}
	if opts.Logger != nil {
		log = opts.Logger
	}
	return &Codec{
		ignore:   !opts.EmitNullOrDefault,
		naming:   opts.Naming,
		maxDepth: coalesce(opts.MaxDepth, DefaultMaxDepth),
		strict:   opts.Strict,
		log:      log,
	}
}

var (
	lenient = New(Options{})
	verbose = New(Options{EmitNullOrDefault: true})
	strict  = New(Options{Strict: true})
)

// Marshal returns the JSON text of v.
func (c *Codec) Marshal(v any) string {
	e := encoderPool.Get().(*encoder)
	e.buf = c.encode(e, e.buf[:0], v)
	s := string(e.buf)
	if cap(e.buf) <= 64<<10 {
		encoderPool.Put(e)
	}
	return s
}

// AppendJSON appends the JSON text of v to dst.
func (c *Codec) AppendJSON(dst []byte, v any) []byte {
	e := encoderPool.Get().(*encoder)
	buf := e.buf
	dst = c.encode(e, dst, v)
	e.buf = buf
	encoderPool.Put(e)
	return dst
}

func (c *Codec) encode(e *encoder, dst []byte, v any) []byte {
	e.buf = dst
	e.ignore = c.ignore
	e.naming = c.naming
	e.depth = 0
	e.maxDepth = c.maxDepth

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		e.null()
		return e.buf
	}
	e.value(rv, planFor(rv.Type(), c.naming))
	return e.buf
}

// decode runs one top-level parse into v.
func (c *Codec) decode(text string, v reflect.Value) error {
	d := decoderPool.Get().(*decoder)
	d.reset(text, c.naming, c.maxDepth)

	d.value(v, planFor(v.Type(), c.naming))
	if d.skipSpace(); !d.eof() {
		d.fail(ErrMalformedInput, nil, "")
	}
	derr := d.err
	d.data = ""
	decoderPool.Put(d)

	if derr == nil {
		return nil
	}
	c.log.Debug("plainjson: recovered while decoding", Fields{
		"kind":   derr.Kind.Error(),
		"offset": derr.Offset,
		"type":   typeName(derr.Type),
		"member": derr.Member,
		"target": typeName(v.Type()),
	})
	if c.strict {
		return derr
	}
	return nil
}

// Unmarshal parses text as a value of type t. Nil pointers, maps and slices
// are returned as an untyped nil.
func (c *Codec) Unmarshal(text string, t reflect.Type) (any, error) {
	if t == nil {
		return nil, ErrInvalidTarget
	}
	out := reflect.New(t).Elem()
	err := c.decode(text, out)
	switch out.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		if out.IsNil() {
			return nil, err
		}
	}
	return out.Interface(), err
}

// UnmarshalInto parses text into the value ptr points at. Records are
// merged: members absent from text keep their current values.
func (c *Codec) UnmarshalInto(text string, ptr any) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}
	return c.decode(text, rv.Elem())
}

// Decode parses text as a T using c.
func Decode[T any](c *Codec, text string) (T, error) {
	var out T
	err := c.decode(text, reflect.ValueOf(&out).Elem())
	return out, err
}

// ToJSON writes v omitting nil and zero record members.
func ToJSON(v any) string { return lenient.Marshal(v) }

// Serialize writes v; ignoreNullOrDefault controls member omission.
func Serialize(v any, ignoreNullOrDefault bool) string {
	if ignoreNullOrDefault {
		return lenient.Marshal(v)
	}
	return verbose.Marshal(v)
}

// FromJSON parses text as a T. Problems are recovered silently.
func FromJSON[T any](text string) T {
	out, _ := Decode[T](lenient, text)
	return out
}

// FromJSONType parses text as a value of type t, nil when that value is absent.
func FromJSONType(text string, t reflect.Type) any {
	out, _ := lenient.Unmarshal(text, t)
	return out
}

// FromJSONStrict parses text as a T and reports the first problem found.
func FromJSONStrict[T any](text string) (T, error) {
	return Decode[T](strict, text)
}

// FromJSONOrNew is FromJSON except that blank text, or text that decodes
// to a nil pointer, yields a new instance.
func FromJSONOrNew[T any](text string) T {
	if strings.TrimSpace(text) == "" {
		return newInstance[T]()
	}
	out := FromJSON[T](text)
	if rv := reflect.ValueOf(&out).Elem(); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return newInstance[T]()
	}
	return out
}

// newInstance returns the zero T, or a pointer to a fresh zero value when
// T is a pointer type. Maps and slices come back empty, not nil.
func newInstance[T any]() T {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	switch rv.Kind() {
	case reflect.Pointer:
		rv.Set(reflect.New(rv.Type().Elem()))
	case reflect.Map:
		rv.Set(reflect.MakeMap(rv.Type()))
	case reflect.Slice:
		rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
	}
	return out
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
