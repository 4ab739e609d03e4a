// Package config holds yaml-backed settings for programs hosting a style
// pool: per-container capacity, container scope, and logging.
package config

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"scs/sheet"
)

type (
	// SheetConfig tunes style pool construction.
	SheetConfig struct {
		ComponentsPerTag int  `yaml:"components_per_tag"`
		Local            bool `yaml:"local"`
	}

	Config struct {
		Sheet   SheetConfig   `yaml:"sheet"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// TagCapacity returns the configured per-container capacity, falling back to
// the default when unset.
func (c *SheetConfig) TagCapacity() int {
	if c.ComponentsPerTag > 0 {
		return c.ComponentsPerTag
	}
	return sheet.ComponentsPerTag
}

// Options maps the configuration onto pool construction options.
func (c *SheetConfig) Options(log *zap.Logger) sheet.Options {
	return sheet.Options{
		Capacity: c.TagCapacity(),
		Local:    c.Local,
		Log:      log,
	}
}

// Load reads yaml configuration. Unknown fields are rejected so typos do not
// pass silently.
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("unable to parse configuration: %w", err)
	}
	if cfg.Sheet.ComponentsPerTag < 0 {
		return nil, fmt.Errorf("components_per_tag must not be negative, got %d", cfg.Sheet.ComponentsPerTag)
	}
	return &cfg, nil
}
