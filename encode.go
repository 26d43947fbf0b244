package plainjson

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// encoder is the per-call state of the Writer.
type encoder struct {
	buf      []byte
	ignore   bool
	naming   NamingPolicy
	depth    int
	maxDepth int
}

var encoderPool = sync.Pool{New: func() any { return &encoder{buf: make([]byte, 0, 256)} }}

func (e *encoder) null() { e.buf = append(e.buf, "null"...) }

// enter guards container nesting. Past the limit the value is written as null,
// which also terminates cyclic pointer graphs.
func (e *encoder) enter() bool {
	if e.depth >= e.maxDepth {
		e.null()
		return false
	}
	e.depth++
	return true
}

func (e *encoder) leave() { e.depth-- }

func (e *encoder) value(v reflect.Value, p *plan) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			e.null()
			return
		}
		v = v.Elem()
		p = planFor(v.Type(), e.naming)
	}
	if p.leaf != nil {
		e.buf = p.leaf.format(e.buf, v)
		return
	}

	switch p.cat {
	case CategoryNullable:
		if v.IsNil() {
			e.null()
			return
		}
		e.value(v.Elem(), p.elem)
	case CategoryKeyedMap:
		if p.capable {
			e.capMap(v, p)
		} else {
			e.goMap(v, p)
		}
	case CategorySequence:
		switch {
		case p.capable:
			e.collection(v, p)
		case v.Kind() == reflect.Slice && v.IsNil():
			e.null()
		default:
			e.array(v, p)
		}
	default:
		if v.Kind() != reflect.Struct {
			e.null() // chan, func, complex
			return
		}
		e.record(v, p)
	}
}

// dynamic writes a value handed out by a capability, re-planning when its
// dynamic type differs from the declared one.
func (e *encoder) dynamic(x any, p *plan) {
	if x == nil {
		e.null()
		return
	}
	v := reflect.ValueOf(x)
	if v.Type() != p.typ {
		p = planFor(v.Type(), e.naming)
	}
	e.value(v, p)
}

func (e *encoder) record(v reflect.Value, p *plan) {
	if !e.enter() {
		return
	}
	e.buf = append(e.buf, '{')
	first := true
	for i := range p.members {
		m := &p.members[i]
		fv, ok := fieldByIndex(v, m.index)
		if !ok {
			continue
		}
		if e.ignore && p.cat != CategoryTuple && omittable(fv, m.plan) {
			continue
		}
		if !first {
			e.buf = append(e.buf, ',')
		}
		first = false
		e.buf = appendQuoted(e.buf, m.name)
		e.buf = append(e.buf, ':')
		e.value(fv, m.plan)
	}
	e.buf = append(e.buf, '}')
	e.leave()
}

func (e *encoder) array(v reflect.Value, p *plan) {
	if !e.enter() {
		return
	}
	e.buf = append(e.buf, '[')
	for i, n := 0, v.Len(); i < n; i++ {
		if i > 0 {
			e.buf = append(e.buf, ',')
		}
		e.value(v.Index(i), p.elem)
	}
	e.buf = append(e.buf, ']')
	e.leave()
}

func (e *encoder) collection(v reflect.Value, p *plan) {
	c, ok := capability(v).(Collection)
	if !ok {
		e.null()
		return
	}
	if !e.enter() {
		return
	}
	e.buf = append(e.buf, '[')
	i := 0
	c.Each(func(x any) bool {
		if i > 0 {
			e.buf = append(e.buf, ',')
		}
		i++
		e.dynamic(x, p.elem)
		return true
	})
	e.buf = append(e.buf, ']')
	e.leave()
}

type mapEntry struct {
	key string
	k   reflect.Value
	v   reflect.Value
}

// goMap writes keys in sorted order: Go maps carry no insertion order.
func (e *encoder) goMap(v reflect.Value, p *plan) {
	if v.IsNil() {
		e.null()
		return
	}
	if !e.enter() {
		return
	}
	entries := make([]mapEntry, 0, v.Len())
	it := v.MapRange()
	for it.Next() {
		k := it.Key()
		entries = append(entries, mapEntry{key: e.keyString(k, p.key), k: k, v: it.Value()})
	}
	slices.SortFunc(entries, compareKeys(p.key.typ.Kind()))

	e.buf = append(e.buf, '{')
	for i := range entries {
		if i > 0 {
			e.buf = append(e.buf, ',')
		}
		e.buf = appendQuoted(e.buf, entries[i].key)
		e.buf = append(e.buf, ':')
		e.value(entries[i].v, p.elem)
	}
	e.buf = append(e.buf, '}')
	e.leave()
}

func compareKeys(k reflect.Kind) func(a, b mapEntry) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b mapEntry) int { return cmp.Compare(a.k.Int(), b.k.Int()) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b mapEntry) int { return cmp.Compare(a.k.Uint(), b.k.Uint()) }
	case reflect.Float32, reflect.Float64:
		return func(a, b mapEntry) int { return cmp.Compare(a.k.Float(), b.k.Float()) }
	default:
		return func(a, b mapEntry) int { return cmp.Compare(a.key, b.key) }
	}
}

func (e *encoder) capMap(v reflect.Value, p *plan) {
	m, ok := capability(v).(Map)
	if !ok {
		e.null()
		return
	}
	if !e.enter() {
		return
	}
	e.buf = append(e.buf, '{')
	i := 0
	m.Range(func(k, x any) bool {
		if i > 0 {
			e.buf = append(e.buf, ',')
		}
		i++
		e.buf = appendQuoted(e.buf, e.keyString(reflect.ValueOf(k), p.key))
		e.buf = append(e.buf, ':')
		e.dynamic(x, p.elem)
		return true
	})
	e.buf = append(e.buf, '}')
	e.leave()
}

// keyString renders a map key in its unquoted form.
func (e *encoder) keyString(k reflect.Value, p *plan) string {
	for k.IsValid() && (k.Kind() == reflect.Interface || k.Kind() == reflect.Pointer) {
		if k.IsNil() {
			return "null"
		}
		k = k.Elem()
	}
	if !k.IsValid() {
		return "null"
	}
	if k.Type() != p.typ {
		p = planFor(k.Type(), e.naming)
	}
	if p.leaf != nil {
		return string(p.leaf.key(nil, k))
	}
	return fmt.Sprint(k.Interface())
}

// omittable reports whether a record member is dropped under ignoreNullOrDefault.
func omittable(v reflect.Value, p *plan) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	case reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	}
	if p.capable {
		switch c := capability(v).(type) {
		case Map:
			return c.Len() == 0
		case Collection:
			return c.Len() == 0
		}
	}
	return v.IsZero()
}

// capability returns a pointer to v so pointer-receiver capability methods
// are reachable; non-addressable values are copied first.
func capability(v reflect.Value) any {
	if v.CanAddr() {
		return v.Addr().Interface()
	}
	pv := reflect.New(v.Type())
	pv.Elem().Set(v)
	return pv.Interface()
}

// fieldByIndex is reflect.Value.FieldByIndex without the panic on nil
// embedded pointers.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}
