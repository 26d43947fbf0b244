package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/plainjson"
	"github.com/unkn0wn-root/plainjson/codec"
	"github.com/unkn0wn-root/plainjson/internal/fixture"
)

// Result is one codec measured on one payload.
type Result struct {
	Instance string
	Codec    string
	Bytes    int
	Encode   time.Duration // per op
	Decode   time.Duration // per op
}

type runner struct {
	cfg *Config
	pj  *plainjson.Codec
	log *zap.Logger
}

func codecFor[V any](name string, pj *plainjson.Codec) (codec.Codec[V], error) {
	switch name {
	case "plainjson":
		return codec.JSON[V]{C: pj}, nil
	case "std":
		return codec.StdJSON[V]{}, nil
	case "goccy":
		return codec.GoJSON[V]{}, nil
	case "msgpack":
		return codec.Msgpack[V]{}, nil
	case "cbor":
		return codec.NewCBOR[V](codec.CBOROptions{})
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}

func measure[V any](r *runner, instance string, v V) ([]Result, error) {
	out := make([]Result, 0, len(r.cfg.Codecs))
	for _, name := range r.cfg.Codecs {
		c, err := codecFor[V](name, r.pj)
		if err != nil {
			return nil, err
		}
		data, err := c.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("%s/%s encode: %w", instance, name, err)
		}
		if _, err := c.Decode(data); err != nil {
			return nil, fmt.Errorf("%s/%s decode: %w", instance, name, err)
		}

		start := time.Now()
		for i := 0; i < r.cfg.Warmup; i++ {
			_, _ = c.Encode(v)
			_, _ = c.Decode(data)
		}
		r.log.Debug("warm-up done", zap.String("instance", instance), zap.String("codec", name), zap.Duration("took", time.Since(start)))

		start = time.Now()
		for i := 0; i < r.cfg.Count; i++ {
			_, _ = c.Encode(v)
		}
		enc := time.Since(start) / time.Duration(r.cfg.Count)

		start = time.Now()
		for i := 0; i < r.cfg.Count; i++ {
			_, _ = c.Decode(data)
		}
		dec := time.Since(start) / time.Duration(r.cfg.Count)

		r.log.Debug("measured",
			zap.String("instance", instance),
			zap.String("codec", name),
			zap.Int("bytes", len(data)),
			zap.Duration("encode", enc),
			zap.Duration("decode", dec))
		out = append(out, Result{Instance: instance, Codec: name, Bytes: len(data), Encode: enc, Decode: dec})
	}
	return out, nil
}

func (r *runner) run(t fixture.InstanceType, f *fixture.Factory) ([]Result, error) {
	inst, err := f.Instance(t, r.cfg.Depth)
	if err != nil {
		return nil, err
	}
	name := t.String()
	switch v := inst.(type) {
	case []int:
		return measure(r, name, v)
	case []string:
		return measure(r, name, v)
	case map[int]string:
		return measure(r, name, v)
	case *fixture.TestClass:
		return measure(r, name, v)
	case fixture.MainTestClass:
		return measure(r, name, v)
	case []fixture.TestClass:
		return measure(r, name, v)
	case []fixture.MainTestClass:
		return measure(r, name, v)
	}
	return nil, fmt.Errorf("%s: unsupported payload %T", name, inst)
}
