package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/plainjson/internal/fixture"
)

// Config is the merged benchmark configuration: defaults, then the YAML
// file, then flags that were set on the command line.
type Config struct {
	Instances         []string `yaml:"instances"`
	Codecs            []string `yaml:"codecs"`
	Count             int      `yaml:"count"`
	Warmup            int      `yaml:"warmup"`
	Depth             int      `yaml:"depth"`
	Seed              uint64   `yaml:"seed"`
	EmitNullOrDefault bool     `yaml:"emit_null_or_default"`
	Debug             bool     `yaml:"debug"`
}

var knownCodecs = []string{"plainjson", "std", "goccy", "msgpack", "cbor"}

func NewConfig() *Config {
	names := make([]string, 0, len(fixture.InstanceTypes()))
	for _, t := range fixture.InstanceTypes() {
		names = append(names, t.String())
	}
	return &Config{
		Instances: names,
		Codecs:    []string{"plainjson", "std"},
		Count:     1000,
		Warmup:    100,
		Depth:     10,
		Seed:      1,
	}
}

// LoadConfig reads path over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Merge overlays the flags that differ from their zero values.
func (c *Config) Merge(f *Flags) {
	if len(f.Instances) > 0 {
		c.Instances = f.Instances
	}
	if len(f.Codecs) > 0 {
		c.Codecs = f.Codecs
	}
	if f.Count > 0 {
		c.Count = f.Count
	}
	if f.Warmup > 0 {
		c.Warmup = f.Warmup
	}
	if f.Depth > 0 {
		c.Depth = f.Depth
	}
	if f.Seed > 0 {
		c.Seed = f.Seed
	}
	c.EmitNullOrDefault = c.EmitNullOrDefault || f.EmitAll
	c.Debug = c.Debug || f.Debug
}

// Validate resolves instance names and rejects unknown codecs.
func (c *Config) Validate() ([]fixture.InstanceType, error) {
	if c.Count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", c.Count)
	}
	types := make([]fixture.InstanceType, 0, len(c.Instances))
	for _, name := range c.Instances {
		t, err := fixture.ParseInstanceType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	for _, name := range c.Codecs {
		if !isKnownCodec(name) {
			return nil, fmt.Errorf("unknown codec %q (known: %v)", name, knownCodecs)
		}
	}
	if len(types) == 0 || len(c.Codecs) == 0 {
		return nil, fmt.Errorf("nothing to run")
	}
	return types, nil
}

func isKnownCodec(name string) bool {
	for _, k := range knownCodecs {
		if k == name {
			return true
		}
	}
	return false
}
