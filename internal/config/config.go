// Package config reads randgen.hcl.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/agentic-research/randgen/internal/scheme"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "randgen.hcl"

// Config is the decoded configuration file.
type Config struct {
	// Store is the snapshot location; see store.Open.
	Store string `hcl:"store,optional"`
	// Seed fixes generation output when non-zero.
	Seed int64 `hcl:"seed,optional"`
	// Count is how many values generate produces by default.
	Count int `hcl:"count,optional"`
	// TimeoutMS bounds a single generation.
	TimeoutMS int        `hcl:"timeout_ms,optional"`
	Log       *LogConfig `hcl:"log,block"`
}

// LogConfig is the log block.
type LogConfig struct {
	Level string `hcl:"level,optional"`
	JSON  bool   `hcl:"json,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Store:     "templates.json",
		Count:     10,
		TimeoutMS: int(scheme.DefaultTimeout / time.Millisecond),
		Log:       &LogConfig{Level: "info"},
	}
}

// Load decodes the file at path on top of Default. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Decode(path, src)
}

// Decode parses src; filename decides between native syntax (.hcl) and
// JSON (.json) and is used in diagnostics.
func Decode(filename string, src []byte) (*Config, error) {
	var cfg Config
	if err := hclsimple.Decode(filename, src, nil, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Store == "" {
		c.Store = def.Store
	}
	if c.Count == 0 {
		c.Count = def.Count
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = def.TimeoutMS
	}
	if c.Log == nil {
		c.Log = def.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate rejects settings no command can work with.
func (c *Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count must be at least 0, got %d", c.Count)
	}
	if c.TimeoutMS < 0 {
		return fmt.Errorf("timeout_ms must be at least 0, got %d", c.TimeoutMS)
	}
	return nil
}

// Timeout returns TimeoutMS as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Encode renders c in HCL native syntax.
func Encode(c *Config) []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}
