// Package config loads the optional cflclosure.toml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"cflclosure/internal/grammar"
	"cflclosure/internal/lang"
	"cflclosure/internal/pipeline"
)

// FileName is the file searched for from the working directory upwards.
const FileName = "cflclosure.toml"

// Config holds demonstration settings. Zero values are never used; Load
// starts from Default and overrides what the file defines.
type Config struct {
	Limits LimitsConfig `toml:"limits"`
	Cache  CacheConfig  `toml:"cache"`

	// Path is the file the config came from, empty for defaults.
	Path string `toml:"-"`
}

type LimitsConfig struct {
	MaxLength    int `toml:"max_length"`
	MaxDepth     int `toml:"max_depth"`
	SampleLength int `toml:"sample_length"`
	SampleCount  int `toml:"sample_count"`
	Examples     int `toml:"examples"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Limits: LimitsConfig{
			MaxLength:    lang.DefaultMaxLength,
			MaxDepth:     grammar.DefaultMaxDepth,
			SampleLength: pipeline.DefaultSampleLength,
			SampleCount:  pipeline.DefaultSampleCount,
			Examples:     lang.DefaultExamples,
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest FileName above startDir, or Default when there
// is none. When the file found cannot be read the result is still Default,
// returned together with the error so callers can warn and carry on.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Default(), err
	}
	if !ok {
		return Default(), nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Load reads path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func (c Config) validate() error {
	l := c.Limits
	for _, f := range []struct {
		key string
		val int
	}{
		{"max_length", l.MaxLength},
		{"max_depth", l.MaxDepth},
		{"sample_length", l.SampleLength},
		{"sample_count", l.SampleCount},
	} {
		if f.val < 0 {
			return fmt.Errorf("[limits].%s must not be negative, got %d", f.key, f.val)
		}
	}
	return nil
}

// Request builds a pipeline request from the settings.
func (c Config) Request() pipeline.Request {
	req := pipeline.DefaultRequest()
	req.SampleLimits = grammar.Limits{MaxLength: c.Limits.SampleLength, MaxDepth: c.Limits.MaxDepth}
	req.SampleCount = c.Limits.SampleCount
	req.Limits = grammar.Limits{MaxLength: c.Limits.MaxLength, MaxDepth: c.Limits.MaxDepth}
	req.Examples = c.Limits.Examples
	return req
}
