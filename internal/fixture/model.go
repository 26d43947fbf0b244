// Package fixture holds the record types used by the codec tests and the
// benchmark harness, and a seeded factory for random instances of them.
package fixture

import (
	"time"

	"github.com/unkn0wn-root/plainjson"
)

type TestEnum int

const (
	EnumNone TestEnum = iota
	EnumFirst
	EnumSecond
	EnumThird
)

type NestedClass struct {
	Bool             *bool
	Double           *float64
	Integer          *int
	Enum             TestEnum
	DateTime         *time.Time
	Time             *time.Duration
	HashSet          *plainjson.Set[int]
	StringArray      []string
	StringEnumerable []string
	StringList       []string
	Dictionary       map[int]*string
}

type TestClass struct {
	NestedClass       *NestedClass
	Classes           []NestedClass
	ClassesDictionary map[int]NestedClass
	String            *string
	Child             *TestClass
}

type MainTestClass struct {
	NestedClass       *TestClass
	NestedClasses     []TestClass
	ClassesDictionary map[string]TestClass
}
