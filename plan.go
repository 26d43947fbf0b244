package plainjson

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// plan is the per-type dispatch record: one category plus whatever the
// category needs (leaf codec, element/key plans, member table).
type plan struct {
	typ  reflect.Type
	cat  Category
	leaf *leafCodec

	elem *plan // nullable: pointee; sequence: element; keyed map: value
	key  *plan // keyed map

	capable bool // container reached through Map/Collection instead of a Go kind

	members []member
	byName  map[string]int
}

type member struct {
	name  string
	index []int
	plan  *plan
}

type planKey struct {
	t      reflect.Type
	naming NamingPolicy
}

var plans sync.Map // planKey -> *plan

func planFor(t reflect.Type, naming NamingPolicy) *plan {
	k := planKey{t: t, naming: naming}
	if p, ok := plans.Load(k); ok {
		return p.(*plan)
	}
	b := planBuilder{naming: naming, seen: make(map[reflect.Type]*plan)}
	p := b.build(t)
	actual, _ := plans.LoadOrStore(k, p)
	return actual.(*plan)
}

// planBuilder registers every plan before its children so recursive types terminate.
type planBuilder struct {
	naming NamingPolicy
	seen   map[reflect.Type]*plan
}

func (b *planBuilder) build(t reflect.Type) *plan {
	if p, ok := b.seen[t]; ok {
		return p
	}
	if p, ok := plans.Load(planKey{t: t, naming: b.naming}); ok {
		return p.(*plan)
	}
	cat := Classify(t)
	p := &plan{typ: t, cat: cat, leaf: leafFor(t, cat)}
	b.seen[t] = p

	switch cat {
	case CategoryNullable:
		p.elem = b.build(t.Elem())
	case CategoryKeyedMap:
		if t.Kind() == reflect.Map {
			p.key, p.elem = b.build(t.Key()), b.build(t.Elem())
		} else {
			m := reflect.New(t).Interface().(Map)
			p.capable = true
			p.key, p.elem = b.build(m.KeyType()), b.build(m.ValueType())
		}
	case CategorySequence:
		switch t.Kind() {
		case reflect.Slice, reflect.Array:
			p.elem = b.build(t.Elem())
		default:
			c := reflect.New(t).Interface().(Collection)
			p.capable = true
			p.elem = b.build(c.ElemType())
		}
	case CategoryTuple:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			p.members = append(p.members, member{
				name:  "Item" + strconv.Itoa(i+1),
				index: f.Index,
				plan:  b.build(f.Type),
			})
		}
		p.indexMembers()
	case CategoryComposite:
		if t.Kind() == reflect.Struct {
			b.collectMembers(p, t)
			p.indexMembers()
		}
	}
	return p
}

type fieldInfo struct {
	name  string
	index []int
	typ   reflect.Type
	depth int
}

// collectMembers flattens exported fields in declaration order; embedded
// structs are expanded in place and a shallower name shadows a deeper one.
func (b *planBuilder) collectMembers(p *plan, t reflect.Type) {
	var fields []fieldInfo
	b.walkFields(t, nil, 0, map[reflect.Type]bool{}, &fields)

	best := make(map[string]int, len(fields))
	for _, f := range fields {
		if d, ok := best[f.name]; !ok || f.depth < d {
			best[f.name] = f.depth
		}
	}
	taken := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.depth != best[f.name] || taken[f.name] {
			continue
		}
		taken[f.name] = true
		p.members = append(p.members, member{name: f.name, index: f.index, plan: b.build(f.typ)})
	}
}

func (b *planBuilder) walkFields(t reflect.Type, parent []int, depth int, visiting map[reflect.Type]bool, out *[]fieldInfo) {
	visiting[t] = true
	defer delete(visiting, t)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		index := make([]int, len(parent)+1)
		copy(index, parent)
		index[len(parent)] = i

		name, _, _ := strings.Cut(tag, ",")
		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && Classify(ft) == CategoryComposite {
				if !visiting[ft] {
					b.walkFields(ft, index, depth+1, visiting, out)
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = b.naming.apply(f.Name)
		}
		*out = append(*out, fieldInfo{name: name, index: index, typ: f.Type, depth: depth})
	}
}

func (p *plan) indexMembers() {
	p.byName = make(map[string]int, len(p.members))
	for i, m := range p.members {
		p.byName[m.name] = i
	}
}
