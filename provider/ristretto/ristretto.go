package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/plainjson/provider"
)

type Provider struct {
	c          *rc.Cache
	defaultTTL time.Duration
}

var _ pr.Provider = (*Provider)(nil)

// Config mirrors ristretto.Config. MaxCost is a byte budget: every entry
// costs the length of its key plus its value, without ristretto's internal
// per-item overhead.
type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool

	// DefaultTTL applies when Set is called with ttl <= 0. Zero keeps
	// documents until they are evicted.
	DefaultTTL time.Duration
}

var ErrInvalidConfig = errors.New("ristretto: invalid config")

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, ErrInvalidConfig
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters:        cfg.NumCounters,
		MaxCost:            cfg.MaxCost,
		BufferItems:        cfg.BufferItems,
		Metrics:            cfg.Metrics,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, defaultTTL: cfg.DefaultTTL}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set waits for ristretto's write buffer so a following Get observes the value.
func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = p.defaultTTL
	}
	ok := p.c.SetWithTTL(key, value, int64(len(key)+len(value)), ttl)
	p.c.Wait()
	return ok, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics is nil unless Config.Metrics was set.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
