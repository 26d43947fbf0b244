// Package persist keeps serialized values in a Store and rewrites them only
// when their content hash changes. It consumes plainjson through its two
// operations, serialize and parse, or through any codec.Codec.
package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/unkn0wn-root/plainjson"
	"github.com/unkn0wn-root/plainjson/codec"
)

var (
	ErrNilStore   = errors.New("persist: nil store")
	ErrRejected   = errors.New("persist: store rejected write")
	ErrInvalidKey = errors.New("persist: invalid key")
)

// Store holds serialized documents by key.
type Store interface {
	// Load returns (data, true, nil) when key exists, (nil, false, nil) otherwise.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Save writes data unless the stored content has the same hash.
	Save(ctx context.Context, key string, data []byte) (written bool, err error)
	Close(ctx context.Context) error
}

type Options[V any] struct {
	Store Store // required

	// Codec serializes values; default codec.JSON[V]{} (plainjson, null and
	// default members omitted).
	Codec codec.Codec[V]

	// Logger receives decode failures at Warn. Default NopLogger.
	Logger plainjson.Logger

	// Hooks observe skipped and rejected writes and decode failures.
	// Default NopHooks.
	Hooks Hooks
}

// Persister saves and loads values of one type.
type Persister[V any] struct {
	store Store
	codec codec.Codec[V]
	log   plainjson.Logger
	hooks Hooks
}

func New[V any](opts Options[V]) (*Persister[V], error) {
	if opts.Store == nil {
		return nil, ErrNilStore
	}
	p := &Persister[V]{store: opts.Store, codec: opts.Codec, log: opts.Logger, hooks: opts.Hooks}
	if p.codec == nil {
		p.codec = codec.JSON[V]{}
	}
	if p.log == nil {
		p.log = plainjson.NopLogger{}
	}
	if p.hooks == nil {
		p.hooks = NopHooks{}
	}
	return p, nil
}

// Save serializes v and stores it under key. written is false when the
// stored content was already identical.
func (p *Persister[V]) Save(ctx context.Context, key string, v V) (written bool, err error) {
	data, err := p.codec.Encode(v)
	if err != nil {
		return false, fmt.Errorf("persist: encode %q: %w", key, err)
	}
	written, err = p.store.Save(ctx, key, data)
	if errors.Is(err, ErrRejected) {
		p.hooks.WriteRejected(key)
	}
	if err != nil {
		return false, fmt.Errorf("persist: save %q: %w", key, err)
	}
	if !written {
		p.hooks.WriteSkipped(key)
		return false, nil
	}
	p.log.Debug("persist: document written", plainjson.Fields{"key": key, "bytes": len(data)})
	return true, nil
}

// Load returns the value stored under key. ok is false when nothing is stored.
func (p *Persister[V]) Load(ctx context.Context, key string) (v V, ok bool, err error) {
	data, ok, err := p.store.Load(ctx, key)
	if err != nil {
		return v, false, fmt.Errorf("persist: load %q: %w", key, err)
	}
	if !ok {
		return v, false, nil
	}
	v, err = p.codec.Decode(data)
	if err != nil {
		p.log.Warn("persist: decode failed", plainjson.Fields{"key": key, "err": err})
		p.hooks.DecodeError(key, err)
		return v, false, fmt.Errorf("persist: decode %q: %w", key, err)
	}
	return v, true, nil
}

func (p *Persister[V]) Close(ctx context.Context) error {
	return p.store.Close(ctx)
}
