package plainjson

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

type recLogger struct {
	mu      sync.Mutex
	entries []Fields
}

func (r *recLogger) Debug(_ string, f Fields) {
	r.mu.Lock()
	r.entries = append(r.entries, f)
	r.mu.Unlock()
}
func (r *recLogger) Info(string, Fields)  {}
func (r *recLogger) Warn(string, Fields)  {}
func (r *recLogger) Error(string, Fields) {}

func TestFromJSONType(t *testing.T) {
	if v := FromJSONType("null", reflect.TypeOf(&person{})); v != nil {
		t.Fatalf("nil pointer should come back as untyped nil, got %#v", v)
	}
	v := FromJSONType(`{"Name":"Ann"}`, reflect.TypeOf(person{}))
	p, ok := v.(person)
	if !ok || p.Name != "Ann" {
		t.Fatalf("got %#v", v)
	}
	if v := FromJSONType("7", reflect.TypeOf(0)); v != 7 {
		t.Fatalf("got %#v", v)
	}
}

func TestFromJSONOrNew(t *testing.T) {
	if p := FromJSONOrNew[*person]("  "); p == nil {
		t.Fatalf("blank text should yield a new instance")
	}
	if p := FromJSONOrNew[*person]("null"); p == nil {
		t.Fatalf("null text should yield a new instance")
	}
	if p := FromJSONOrNew[*person](`{"Age":2}`); p == nil || p.Age != 2 {
		t.Fatalf("got %+v", p)
	}
	if m := FromJSONOrNew[map[string]int](""); m == nil {
		t.Fatalf("map should be allocated")
	}
}

func TestUnmarshalIntoMerges(t *testing.T) {
	c := New(Options{})
	p := person{Name: "A", Age: 3}
	if err := c.UnmarshalInto(`{"Age":4}`, &p); err != nil {
		t.Fatalf("UnmarshalInto: %v", err)
	}
	if p.Name != "A" || p.Age != 4 {
		t.Fatalf("got %+v", p)
	}
	if err := c.UnmarshalInto(`{}`, p); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("non-pointer target: got %v", err)
	}
	var nilPtr *person
	if err := c.UnmarshalInto(`{}`, nilPtr); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("nil pointer target: got %v", err)
	}
}

func TestUnmarshalStrictCodec(t *testing.T) {
	c := New(Options{Strict: true})
	v, err := c.Unmarshal(`{"Age":"x"}`, reflect.TypeOf(person{}))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("got %v", err)
	}
	if p, ok := v.(person); !ok || p.Age != 0 {
		t.Fatalf("value should still be returned, got %#v", v)
	}
	if _, err := c.Unmarshal("{}", nil); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("nil type: got %v", err)
	}
}

func TestLenientDecodeLogsRecovery(t *testing.T) {
	rec := &recLogger{}
	c := New(Options{Logger: rec})
	if _, err := Decode[person](c, `{"Age":"x"}`); err != nil {
		t.Fatalf("lenient codec must not return errors, got %v", err)
	}
	if _, err := Decode[person](c, `{"Age":1}`); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(rec.entries) != 1 {
		t.Fatalf("expected one debug entry, got %d", len(rec.entries))
	}
	f := rec.entries[0]
	if f["kind"] != ErrTypeMismatch.Error() || f["type"] != "int" {
		t.Fatalf("fields: %v", f)
	}
}

func TestCodecConcurrentUse(t *testing.T) {
	c := New(Options{EmitNullOrDefault: true})
	in := person{Name: "N", Age: 1, Tags: []string{"t"}}
	want := c.Marshal(in)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s := c.Marshal(in)
				if s != want {
					errs <- s
					return
				}
				out, _ := Decode[person](c, s)
				if out.Name != "N" || out.Age != 1 {
					errs <- s
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for s := range errs {
		t.Fatalf("concurrent mismatch: %s", s)
	}
}
