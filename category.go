package plainjson

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Category is the shape a type is read and written as.
// Values are listed in classification precedence order.
type Category uint8

const (
	CategoryNullable Category = iota
	CategoryScalar
	CategoryEnum
	CategoryGUID
	CategoryDateTime
	CategoryTimeInterval
	CategoryString
	CategoryKeyedMap
	CategorySequence
	CategoryTuple
	CategoryComposite
)

var categoryNames = [...]string{
	CategoryNullable:     "nullable",
	CategoryScalar:       "scalar",
	CategoryEnum:         "enum",
	CategoryGUID:         "guid",
	CategoryDateTime:     "datetime",
	CategoryTimeInterval: "timeinterval",
	CategoryString:       "string",
	CategoryKeyedMap:     "keyedmap",
	CategorySequence:     "sequence",
	CategoryTuple:        "tuple",
	CategoryComposite:    "composite",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// IsLeaf reports whether values of the category are written as a single JSON token.
func (c Category) IsLeaf() bool {
	return c >= CategoryScalar && c <= CategoryString
}

var (
	durationType   = reflect.TypeOf(time.Duration(0))
	timeType       = reflect.TypeOf(time.Time{})
	dateTimeType   = reflect.TypeOf(DateTime{})
	uuidType       = reflect.TypeOf(uuid.UUID{})
	mapCapType     = reflect.TypeOf((*Map)(nil)).Elem()
	collectCapType = reflect.TypeOf((*Collection)(nil)).Elem()
	tupleType      = reflect.TypeOf((*tuple)(nil)).Elem()
)

// Classify returns the Category of t. The checks run top-down and the first
// match wins, so a type that is both map- and collection-capable is a
// CategoryKeyedMap and uuid.UUID is a CategoryGUID rather than an array.
func Classify(t reflect.Type) Category {
	k := t.Kind()
	switch {
	case k == reflect.Pointer:
		return CategoryNullable
	case isScalar(t):
		return CategoryScalar
	case isEnum(t):
		return CategoryEnum
	case t == uuidType:
		return CategoryGUID
	case t == dateTimeType || t == timeType:
		return CategoryDateTime
	case t == durationType:
		return CategoryTimeInterval
	case k == reflect.String:
		return CategoryString
	case k == reflect.Map || implements(t, mapCapType):
		return CategoryKeyedMap
	case k == reflect.Slice || k == reflect.Array || implements(t, collectCapType):
		return CategorySequence
	case t.Implements(tupleType):
		return CategoryTuple
	default:
		return CategoryComposite
	}
}

func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.Float32, reflect.Float64:
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return t.PkgPath() == ""
	}
	return false
}

func isEnum(t reflect.Type) bool {
	if t == durationType || t.PkgPath() == "" {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// implements checks the pointer method set: capability methods mutate.
func implements(t, iface reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return false
	}
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}
