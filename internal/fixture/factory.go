package fixture

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/plainjson"
)

// InstanceType names one benchmark payload.
type InstanceType int

const (
	ArrayInt InstanceType = iota + 1
	ArrayString
	DictionaryIntString
	DeepTestClass
	MainTestObject
	ArrayTestClass
	ArrayMainTestObject
)

var instanceNames = [...]string{
	ArrayInt:            "array-int",
	ArrayString:         "array-string",
	DictionaryIntString: "dictionary-int-string",
	DeepTestClass:       "deep-test-class",
	MainTestObject:      "main-test-object",
	ArrayTestClass:      "array-test-class",
	ArrayMainTestObject: "array-main-test-object",
}

func (t InstanceType) String() string {
	if t > 0 && int(t) < len(instanceNames) {
		return instanceNames[t]
	}
	return fmt.Sprintf("InstanceType(%d)", int(t))
}

// InstanceTypes lists every payload in catalogue order.
func InstanceTypes() []InstanceType {
	out := make([]InstanceType, 0, len(instanceNames)-1)
	for t := ArrayInt; t <= ArrayMainTestObject; t++ {
		out = append(out, t)
	}
	return out
}

// ParseInstanceType accepts the kebab-case names returned by String.
func ParseInstanceType(s string) (InstanceType, error) {
	for _, t := range InstanceTypes() {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("fixture: unknown instance type %q", s)
}

// Factory builds random instances. Strings are random UUIDs; everything else
// comes from a seeded generator.
type Factory struct {
	r   *rand.Rand
	now time.Time
}

func NewFactory(seed uint64) *Factory {
	return &Factory{
		r:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now().UTC().Truncate(time.Second),
	}
}

// Instance returns the payload for t; depth applies to DeepTestClass only.
func (f *Factory) Instance(t InstanceType, depth int) (any, error) {
	switch t {
	case ArrayInt:
		return f.Ints(1000), nil
	case ArrayString:
		return f.Strings(1000), nil
	case DictionaryIntString:
		return f.IntStrings(1000), nil
	case DeepTestClass:
		return f.Deep(depth), nil
	case MainTestObject:
		return f.Main(), nil
	case ArrayTestClass:
		out := make([]TestClass, 100)
		for i := range out {
			out[i] = f.TestClass(10)
		}
		return out, nil
	case ArrayMainTestObject:
		out := make([]MainTestClass, 10)
		for i := range out {
			out[i] = f.Main()
		}
		return out, nil
	}
	return nil, fmt.Errorf("fixture: unknown instance type %d", int(t))
}

func (f *Factory) Ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = f.r.IntN(10000)
	}
	return out
}

func (f *Factory) Strings(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = uuid.NewString()
	}
	return out
}

// IntStrings returns exactly n entries; colliding keys are redrawn.
func (f *Factory) IntStrings(n int) map[int]string {
	out := make(map[int]string, n)
	for len(out) < n {
		out[f.r.IntN(n*10)] = uuid.NewString()
	}
	return out
}

func (f *Factory) Nested(size int) NestedClass {
	b := f.r.IntN(2) == 0
	d := float64(f.r.IntN(1000)) / math.Pi
	i := f.r.IntN(1000)
	ts := f.now
	dur := 24*time.Hour*time.Duration(f.r.IntN(100)) +
		time.Hour*time.Duration(f.r.IntN(24)) +
		time.Minute*time.Duration(f.r.IntN(60)) +
		time.Second*time.Duration(f.r.IntN(60)) +
		time.Millisecond*time.Duration(f.r.IntN(1000)) +
		time.Microsecond*time.Duration(f.r.IntN(1000))

	set := plainjson.NewSet[int]()
	for j := 0; j < size; j++ {
		set.Insert(f.r.IntN(100))
	}
	dict := make(map[int]*string, size/2)
	for j := 0; j < size/2; j++ {
		if j%3 == 2 {
			dict[j] = nil
			continue
		}
		s := uuid.NewString()
		dict[j] = &s
	}
	return NestedClass{
		Bool:             &b,
		Double:           &d,
		Integer:          &i,
		Enum:             TestEnum(f.r.IntN(4)),
		DateTime:         &ts,
		Time:             &dur,
		HashSet:          set,
		StringArray:      f.Strings(size),
		StringEnumerable: f.Strings(size),
		StringList:       f.Strings(size),
		Dictionary:       dict,
	}
}

func (f *Factory) TestClass(size int) TestClass {
	nested := f.Nested(size)
	s := uuid.NewString()
	return TestClass{
		NestedClass:       &nested,
		Classes:           []NestedClass{f.Nested(2), f.Nested(2)},
		ClassesDictionary: map[int]NestedClass{0: f.Nested(2), 1: f.Nested(2)},
		String:            &s,
	}
}

// Deep returns depth+1 test classes linked through Child.
func (f *Factory) Deep(depth int) *TestClass {
	tc := f.TestClass(2)
	if depth > 0 {
		tc.Child = f.Deep(depth - 1)
	}
	return &tc
}

func (f *Factory) Main() MainTestClass {
	head := f.TestClass(100)
	list := make([]TestClass, 20)
	for i := range list {
		list[i] = f.TestClass(10)
	}
	dict := make(map[string]TestClass, 20)
	for len(dict) < 20 {
		dict[uuid.NewString()] = f.TestClass(10)
	}
	return MainTestClass{NestedClass: &head, NestedClasses: list, ClassesDictionary: dict}
}
