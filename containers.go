package plainjson

import "reflect"

// Map is implemented (usually on the pointer) by keyed containers that are
// not Go maps. The reader builds a fresh zero value and fills it with Put;
// KeyType and ValueType must answer on that zero value.
type Map interface {
	KeyType() reflect.Type
	ValueType() reflect.Type
	Len() int
	Range(fn func(key, value any) bool)
	Put(key, value any)
}

// Collection is implemented (usually on the pointer) by sequence containers
// that are not slices or arrays. Sets de-duplicate inside Add.
type Collection interface {
	ElemType() reflect.Type
	Len() int
	Each(fn func(v any) bool)
	Add(v any)
}

// Entry is one key/value pair of an OrderedMap.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// OrderedMap is a map that remembers insertion order. It is both a Map and a
// Collection of entries; it is read and written as a JSON object.
// The zero value is ready to use.
type OrderedMap[K comparable, V any] struct {
	entries []Entry[K, V]
	index   map[K]int
}

var (
	_ Map        = (*OrderedMap[string, int])(nil)
	_ Collection = (*OrderedMap[string, int])(nil)
)

// Set stores v under k. An existing key keeps its position.
func (m *OrderedMap[K, V]) Set(k K, v V) {
	if i, ok := m.index[k]; ok {
		m.entries[i].Value = v
		return
	}
	if m.index == nil {
		m.index = make(map[K]int)
	}
	m.index[k] = len(m.entries)
	m.entries = append(m.entries, Entry[K, V]{Key: k, Value: v})
}

func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	if i, ok := m.index[k]; ok {
		return m.entries[i].Value, true
	}
	var zero V
	return zero, false
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Key
	}
	return out
}

// Entries returns a copy of the entries in insertion order.
func (m *OrderedMap[K, V]) Entries() []Entry[K, V] {
	return append([]Entry[K, V](nil), m.entries...)
}

func (m *OrderedMap[K, V]) Len() int { return len(m.entries) }

func (m *OrderedMap[K, V]) KeyType() reflect.Type   { return reflect.TypeOf((*K)(nil)).Elem() }
func (m *OrderedMap[K, V]) ValueType() reflect.Type { return reflect.TypeOf((*V)(nil)).Elem() }

func (m *OrderedMap[K, V]) Range(fn func(key, value any) bool) {
	for _, e := range m.entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

func (m *OrderedMap[K, V]) Put(key, value any) {
	k, _ := key.(K)
	v, _ := value.(V)
	m.Set(k, v)
}

func (m *OrderedMap[K, V]) ElemType() reflect.Type { return reflect.TypeOf(Entry[K, V]{}) }

func (m *OrderedMap[K, V]) Each(fn func(v any) bool) {
	for _, e := range m.entries {
		if !fn(e) {
			return
		}
	}
}

func (m *OrderedMap[K, V]) Add(v any) {
	if e, ok := v.(Entry[K, V]); ok {
		m.Set(e.Key, e.Value)
	}
}

// Set is an insertion-ordered set. Duplicates are dropped on Insert/Add.
// The zero value is ready to use.
type Set[T comparable] struct {
	items []T
	index map[T]struct{}
}

var _ Collection = (*Set[int])(nil)

// NewSet returns a set holding vs without duplicates.
func NewSet[T comparable](vs ...T) *Set[T] {
	s := &Set[T]{}
	for _, v := range vs {
		s.Insert(v)
	}
	return s
}

// Insert adds v and reports whether it was not present.
func (s *Set[T]) Insert(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Values returns the members in insertion order.
func (s *Set[T]) Values() []T { return append([]T(nil), s.items...) }

func (s *Set[T]) Len() int { return len(s.items) }

func (s *Set[T]) ElemType() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (s *Set[T]) Each(fn func(v any) bool) {
	for _, v := range s.items {
		if !fn(v) {
			return
		}
	}
}

func (s *Set[T]) Add(v any) {
	if t, ok := v.(T); ok {
		s.Insert(t)
	}
}
