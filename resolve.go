package plainjson

import "reflect"

// member looks up a JSON member name on a record plan.
func (p *plan) member(name []byte) *member {
	if i, ok := p.byName[string(name)]; ok {
		return &p.members[i]
	}
	return nil
}

// settableField returns the destination of m inside v, allocating nil
// embedded pointers on the way. It fails for unknown members and for nil
// pointers to unexported embedded types, which cannot be allocated.
func settableField(v reflect.Value, m *member) (reflect.Value, bool) {
	if m == nil {
		return reflect.Value{}, false
	}
	for i, x := range m.index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, v.CanSet()
}

// assignSequence coerces freshly decoded elements into the container shape
// the destination declares: fixed arrays get an exact-length copy, named
// slice types a conversion, Collection capabilities one Add per element.
func assignSequence(v reflect.Value, p *plan, elems reflect.Value) {
	switch {
	case p.capable:
		target := reflect.New(p.typ)
		if c, ok := target.Interface().(Collection); ok {
			for i, n := 0, elems.Len(); i < n; i++ {
				c.Add(elems.Index(i).Interface())
			}
		}
		v.Set(target.Elem())
	case p.typ.Kind() == reflect.Array:
		arr := reflect.New(p.typ).Elem()
		reflect.Copy(arr, elems)
		v.Set(arr)
	case elems.Type() == p.typ:
		v.Set(elems)
	default:
		v.Set(elems.Convert(p.typ))
	}
}

// mapSink rebuilds a keyed map from the destination's declared key and
// value types, either as a Go map or through the Map capability.
type mapSink struct {
	m      reflect.Value
	target reflect.Value
	cap    Map
}

func newMapSink(p *plan) mapSink {
	if p.capable {
		target := reflect.New(p.typ)
		m, _ := target.Interface().(Map)
		return mapSink{target: target, cap: m}
	}
	return mapSink{m: reflect.MakeMap(p.typ)}
}

func (s mapSink) put(k, v reflect.Value) {
	if s.cap != nil {
		s.cap.Put(k.Interface(), v.Interface())
		return
	}
	s.m.SetMapIndex(k, v)
}

func (s mapSink) assign(dst reflect.Value) {
	if s.target.IsValid() {
		dst.Set(s.target.Elem())
		return
	}
	dst.Set(s.m)
}
