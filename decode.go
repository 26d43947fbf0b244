package plainjson

import (
	"reflect"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

// decoder is the per-call state of the Reader. pos is the scan cursor shared
// by every recursive call of one parse; acc collects the raw text of the
// scalar being read.
type decoder struct {
	data     string
	pos      int
	acc      []byte
	naming   NamingPolicy
	depth    int
	maxDepth int
	err      *DecodeError
}

var decoderPool = sync.Pool{New: func() any { return &decoder{acc: make([]byte, 0, 64)} }}

func (d *decoder) reset(data string, naming NamingPolicy, maxDepth int) {
	d.data = data
	d.pos = 0
	d.acc = d.acc[:0]
	d.naming = naming
	d.depth = 0
	d.maxDepth = maxDepth
	d.err = nil
}

// fail records the first problem; later ones are dropped.
func (d *decoder) fail(kind error, t reflect.Type, member string) {
	if d.err != nil {
		return
	}
	d.err = &DecodeError{Kind: kind, Offset: d.pos, Type: t, Member: member}
}

func (d *decoder) eof() bool { return d.pos >= len(d.data) }

func (d *decoder) skipSpace() {
	for d.pos < len(d.data) {
		switch d.data[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

// peek returns the next significant byte without consuming it, 0 at the end.
func (d *decoder) peek() byte {
	d.skipSpace()
	if d.eof() {
		return 0
	}
	return d.data[d.pos]
}

// scalar reads one scalar token into acc. It stops before an unquoted
// , : } ] (or an opening bracket) and reports whether any quote was seen.
// Quotes are not accumulated; whitespace outside quotes is dropped.
func (d *decoder) scalar() (quoted bool) {
	d.acc = d.acc[:0]
	inQuote := false
	for d.pos < len(d.data) {
		c := d.data[d.pos]
		if inQuote {
			switch c {
			case '"':
				inQuote = false
				d.pos++
			case '\\':
				d.escape()
			default:
				d.acc = append(d.acc, c)
				d.pos++
			}
			continue
		}
		switch c {
		case ',', ':', '}', ']', '{', '[':
			return quoted
		case '"':
			inQuote, quoted = true, true
			d.pos++
		case ' ', '\t', '\n', '\r':
			d.pos++
		case '\\':
			d.escape()
		default:
			d.acc = append(d.acc, c)
			d.pos++
		}
	}
	return quoted
}

func (d *decoder) escape() {
	d.pos++
	if d.eof() {
		return
	}
	c := d.data[d.pos]
	d.pos++
	switch c {
	case 'n':
		d.acc = append(d.acc, '\n')
	case 'r':
		d.acc = append(d.acc, '\r')
	case 't':
		d.acc = append(d.acc, '\t')
	case 'b':
		d.acc = append(d.acc, '\b')
	case 'f':
		d.acc = append(d.acc, '\f')
	case 'u':
		r, ok := d.hex4()
		if !ok {
			d.acc = append(d.acc, 'u')
			return
		}
		if utf16.IsSurrogate(r) {
			if d.pos+1 < len(d.data) && d.data[d.pos] == '\\' && d.data[d.pos+1] == 'u' {
				save := d.pos
				d.pos += 2
				if r2, ok := d.hex4(); ok {
					if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
						d.acc = utf8.AppendRune(d.acc, dec)
						return
					}
				}
				d.pos = save
			}
			r = utf8.RuneError
		}
		d.acc = utf8.AppendRune(d.acc, r)
	default:
		d.acc = append(d.acc, c)
	}
}

func (d *decoder) hex4() (rune, bool) {
	if d.pos+4 > len(d.data) {
		return 0, false
	}
	var r rune
	for _, c := range []byte(d.data[d.pos : d.pos+4]) {
		switch {
		case '0' <= c && c <= '9':
			c -= '0'
		case 'a' <= c && c <= 'f':
			c = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			c = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(c)
	}
	d.pos += 4
	return r, true
}

// skipValue consumes one value of any shape without recursion.
func (d *decoder) skipValue() {
	d.skipSpace()
	depth := 0
	inQuote := false
	for d.pos < len(d.data) {
		c := d.data[d.pos]
		if inQuote {
			switch c {
			case '\\':
				d.pos++
			case '"':
				inQuote = false
			}
			d.pos++
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '{', '[':
			depth++
		case '}', ']':
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				d.pos++
				return
			}
		case ',', ':':
			if depth == 0 {
				return
			}
		}
		d.pos++
	}
}

// next consumes the separator after an element. It reports whether another
// element follows; a closer or the end of input ends the container.
func (d *decoder) next(closer byte) bool {
	switch c := d.peek(); {
	case c == ',':
		d.pos++
		return true
	case c == closer:
		d.pos++
		return false
	case d.eof():
		d.fail(ErrMalformedInput, nil, "")
		return false
	default:
		d.fail(ErrMalformedInput, nil, "")
		d.pos++
		return true
	}
}

func (d *decoder) value(v reflect.Value, p *plan) {
	switch c := d.peek(); {
	case c == '{' || c == '[':
		d.container(v, p, c)
	default:
		d.assignScalar(v, p, d.scalar())
	}
}

func (d *decoder) container(v reflect.Value, p *plan, open byte) {
	if !accepts(p, open) {
		d.fail(ErrTypeMismatch, p.typ, "")
		d.skipValue()
		v.SetZero()
		return
	}
	if p.cat == CategoryNullable {
		ptr := reflect.New(p.elem.typ)
		d.container(ptr.Elem(), p.elem, open)
		v.Set(ptr)
		return
	}

	if d.depth >= d.maxDepth {
		d.fail(ErrTooDeep, p.typ, "")
		d.skipValue()
		return
	}
	d.depth++
	d.pos++
	switch p.cat {
	case CategoryKeyedMap:
		d.keyedMap(v, p)
	case CategorySequence:
		d.sequence(v, p)
	default:
		d.record(v, p)
	}
	d.depth--
}

// accepts reports whether a value of plan p can be read from a container
// starting with open.
func accepts(p *plan, open byte) bool {
	for p.cat == CategoryNullable {
		p = p.elem
	}
	switch p.cat {
	case CategoryKeyedMap:
		return open == '{'
	case CategorySequence:
		return open == '['
	case CategoryTuple, CategoryComposite:
		return open == '{' && p.typ.Kind() == reflect.Struct
	}
	return false
}

// assignScalar stores the scalar held in acc. null (quoted or bare) is the
// zero value; an unparsable scalar is the zero value plus a recorded failure.
func (d *decoder) assignScalar(v reflect.Value, p *plan, quoted bool) bool {
	s := d.acc
	switch {
	case len(s) == 0 && !quoted:
		v.SetZero()
		d.fail(ErrMalformedInput, p.typ, "")
		return false
	case isNull(s), len(s) == 0 && p.cat == CategoryNullable:
		d.emptyOrZero(v, p)
		return true
	case p.cat == CategoryNullable:
		ptr := reflect.New(p.elem.typ)
		ok := d.assignScalar(ptr.Elem(), p.elem, quoted)
		v.Set(ptr)
		return ok
	case p.leaf != nil:
		if p.leaf.parse(v, string(s)) {
			return true
		}
	}
	d.emptyOrZero(v, p)
	d.fail(ErrTypeMismatch, p.typ, "")
	return false
}

// emptyOrZero leaves sequences and maps empty rather than nil.
func (d *decoder) emptyOrZero(v reflect.Value, p *plan) {
	switch p.cat {
	case CategorySequence:
		assignSequence(v, p, reflect.New(reflect.SliceOf(p.elem.typ)).Elem())
	case CategoryKeyedMap:
		newMapSink(p).assign(v)
	default:
		v.SetZero()
	}
}

func isNull(s []byte) bool { return string(s) == "null" }

func (d *decoder) record(v reflect.Value, p *plan) {
	for {
		switch c := d.peek(); {
		case c == '}':
			d.pos++
			return
		case d.eof():
			d.fail(ErrMalformedInput, p.typ, "")
			return
		}

		d.scalar()
		m := p.member(d.acc)
		if m == nil && d.err == nil {
			d.fail(ErrUnknownMember, p.typ, string(d.acc))
		}
		if d.peek() != ':' {
			d.fail(ErrMalformedInput, p.typ, "")
			d.skipValue()
		} else {
			d.pos++
			if fv, ok := settableField(v, m); ok {
				d.value(fv, m.plan)
			} else {
				d.skipValue()
			}
		}
		if !d.next('}') {
			return
		}
	}
}

func (d *decoder) keyedMap(v reflect.Value, p *plan) {
	sink := newMapSink(p)
	k := reflect.New(p.key.typ).Elem()
	x := reflect.New(p.elem.typ).Elem()
	for {
		switch c := d.peek(); {
		case c == '}':
			d.pos++
			sink.assign(v)
			return
		case d.eof():
			d.fail(ErrMalformedInput, p.typ, "")
			sink.assign(v)
			return
		}

		quoted := d.scalar()
		null := isNull(d.acc)
		keyOK := d.assignScalar(k, p.key, quoted) && !null
		switch {
		case d.peek() == ':':
			d.pos++
			x.SetZero()
			d.value(x, p.elem)
			if keyOK {
				sink.put(k, x)
			}
		case null:
			// {null} is an empty map
		default:
			d.fail(ErrMalformedInput, p.typ, "")
			d.skipValue()
		}
		if !d.next('}') {
			sink.assign(v)
			return
		}
	}
}

func (d *decoder) sequence(v reflect.Value, p *plan) {
	elems := reflect.New(reflect.SliceOf(p.elem.typ)).Elem()
	for {
		switch c := d.peek(); {
		case c == ']':
			d.pos++
			assignSequence(v, p, elems)
			return
		case d.eof():
			d.fail(ErrMalformedInput, p.typ, "")
			assignSequence(v, p, elems)
			return
		}

		n := elems.Len()
		elems.Grow(1)
		elems.SetLen(n + 1)
		d.value(elems.Index(n), p.elem)
		if !d.next(']') {
			assignSequence(v, p, elems)
			return
		}
	}
}
