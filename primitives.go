package plainjson

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// leafCodec formats and parses one scalar type.
// format writes a complete JSON token, key writes the text placed between
// the quotes of an object key, parse reports false when s is not a valid value.
type leafCodec struct {
	format func(dst []byte, v reflect.Value) []byte
	key    func(dst []byte, v reflect.Value) []byte
	parse  func(v reflect.Value, s string) bool
}

var (
	boolLeaf = &leafCodec{
		format: appendBool,
		key:    appendBool,
		parse: func(v reflect.Value, s string) bool {
			s = strings.TrimSpace(s)
			switch {
			case strings.EqualFold(s, "true"):
				v.SetBool(true)
			case strings.EqualFold(s, "false"):
				v.SetBool(false)
			default:
				return false
			}
			return true
		},
	}
	intLeaf = &leafCodec{
		format: appendInt,
		key:    appendInt,
		parse: func(v reflect.Value, s string) bool {
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil || v.OverflowInt(n) {
				return false
			}
			v.SetInt(n)
			return true
		},
	}
	uintLeaf = &leafCodec{
		format: appendUint,
		key:    appendUint,
		parse: func(v reflect.Value, s string) bool {
			n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
			if err != nil || v.OverflowUint(n) {
				return false
			}
			v.SetUint(n)
			return true
		},
	}
	floatLeaf = &leafCodec{
		format: func(dst []byte, v reflect.Value) []byte {
			return appendFloat(dst, v.Float(), v.Type().Bits(), true)
		},
		key: func(dst []byte, v reflect.Value) []byte {
			return appendFloat(dst, v.Float(), v.Type().Bits(), false)
		},
		parse: func(v reflect.Value, s string) bool {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), v.Type().Bits())
			if err != nil {
				return false
			}
			v.SetFloat(f)
			return true
		},
	}
	stringLeaf = &leafCodec{
		format: func(dst []byte, v reflect.Value) []byte {
			return appendQuoted(dst, v.String())
		},
		key: func(dst []byte, v reflect.Value) []byte {
			return append(dst, v.String()...)
		},
		parse: func(v reflect.Value, s string) bool {
			v.SetString(s)
			return true
		},
	}
	guidLeaf = &leafCodec{
		format: func(dst []byte, v reflect.Value) []byte {
			dst = append(dst, '"')
			dst = appendGUID(dst, v)
			return append(dst, '"')
		},
		key: appendGUID,
		parse: func(v reflect.Value, s string) bool {
			u, err := uuid.Parse(strings.TrimSpace(s))
			if err != nil {
				return false
			}
			v.Set(reflect.ValueOf(u))
			return true
		},
	}
	dateTimeLeaf = &leafCodec{
		format: quotedLeaf(func(dst []byte, v reflect.Value) []byte {
			return appendDateTime(dst, v.Interface().(DateTime))
		}),
		key: func(dst []byte, v reflect.Value) []byte {
			return appendDateTime(dst, v.Interface().(DateTime))
		},
		parse: func(v reflect.Value, s string) bool {
			d, ok := parseDateTime(s)
			if ok {
				v.Set(reflect.ValueOf(d))
			}
			return ok
		},
	}
	timeLeaf = &leafCodec{
		format: quotedLeaf(func(dst []byte, v reflect.Value) []byte {
			return appendTime(dst, v.Interface().(time.Time))
		}),
		key: func(dst []byte, v reflect.Value) []byte {
			return appendTime(dst, v.Interface().(time.Time))
		},
		parse: func(v reflect.Value, s string) bool {
			t, ok := parseTime(s)
			if ok {
				v.Set(reflect.ValueOf(t))
			}
			return ok
		},
	}
	intervalLeaf = &leafCodec{
		format: quotedLeaf(func(dst []byte, v reflect.Value) []byte {
			return appendInterval(dst, time.Duration(v.Int()))
		}),
		key: func(dst []byte, v reflect.Value) []byte {
			return appendInterval(dst, time.Duration(v.Int()))
		},
		parse: func(v reflect.Value, s string) bool {
			d, ok := parseInterval(s)
			if ok {
				v.SetInt(int64(d))
			}
			return ok
		},
	}
)

// leafFor returns the codec for a leaf category, nil otherwise.
func leafFor(t reflect.Type, c Category) *leafCodec {
	switch c {
	case CategoryGUID:
		return guidLeaf
	case CategoryDateTime:
		if t == timeType {
			return timeLeaf
		}
		return dateTimeLeaf
	case CategoryTimeInterval:
		return intervalLeaf
	case CategoryString:
		return stringLeaf
	case CategoryScalar, CategoryEnum:
		switch t.Kind() {
		case reflect.Bool:
			return boolLeaf
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return intLeaf
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return uintLeaf
		case reflect.Float32, reflect.Float64:
			return floatLeaf
		}
	}
	return nil
}

func quotedLeaf(f func(dst []byte, v reflect.Value) []byte) func(dst []byte, v reflect.Value) []byte {
	return func(dst []byte, v reflect.Value) []byte {
		dst = append(dst, '"')
		dst = f(dst, v)
		return append(dst, '"')
	}
}

func appendBool(dst []byte, v reflect.Value) []byte {
	if v.Bool() {
		return append(dst, "true"...)
	}
	return append(dst, "false"...)
}

func appendInt(dst []byte, v reflect.Value) []byte {
	return strconv.AppendInt(dst, v.Int(), 10)
}

func appendUint(dst []byte, v reflect.Value) []byte {
	return strconv.AppendUint(dst, v.Uint(), 10)
}

func appendGUID(dst []byte, v reflect.Value) []byte {
	u := v.Interface().(uuid.UUID)
	var b [36]byte
	hexEncodeUUID(b[:], u)
	return append(dst, b[:]...)
}

func hexEncodeUUID(dst []byte, u uuid.UUID) {
	const hex = "0123456789abcdef"
	j := 0
	for i, c := range u {
		if i == 4 || i == 6 || i == 8 || i == 10 {
			dst[j] = '-'
			j++
		}
		dst[j] = hex[c>>4]
		dst[j+1] = hex[c&0x0f]
		j += 2
	}
}

// appendFloat uses the shortest representation that round-trips; exponent
// form only outside [1e-6, 1e21). Non-finite values become quoted names
// that strconv.ParseFloat reads back.
func appendFloat(dst []byte, f float64, bits int, quote bool) []byte {
	var name string
	switch {
	case math.IsNaN(f):
		name = "NaN"
	case math.IsInf(f, 1):
		name = "Infinity"
	case math.IsInf(f, -1):
		name = "-Infinity"
	}
	if name != "" {
		if quote {
			return append(append(append(dst, '"'), name...), '"')
		}
		return append(dst, name...)
	}

	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			fmt = 'e'
		}
	}
	dst = strconv.AppendFloat(dst, f, fmt, -1, bits)
	if fmt == 'e' {
		// clean up e-09 to e-9
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	dst = appendEscaped(dst, s)
	return append(dst, '"')
}

// appendEscaped escapes exactly backslash, quote, \n, \r and \t.
func appendEscaped(dst []byte, s string) []byte {
	start := 0
	for i := 0; i < len(s); i++ {
		var esc byte
		switch s[i] {
		case '\\':
			esc = '\\'
		case '"':
			esc = '"'
		case '\n':
			esc = 'n'
		case '\r':
			esc = 'r'
		case '\t':
			esc = 't'
		default:
			continue
		}
		dst = append(dst, s[start:i]...)
		dst = append(dst, '\\', esc)
		start = i + 1
	}
	return append(dst, s[start:]...)
}
