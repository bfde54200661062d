// Package config holds server configuration: defaults, an optional YAML
// file on top, then command-line flags on top of that.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/me/taskplan/internal/logging"
)

// ServerConfig holds configuration for the taskplan server.
type ServerConfig struct {
	Addr      string `yaml:"addr"`       // Listen address (default ":8080")
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
	Timezone  string `yaml:"timezone"`   // IANA name deadlines are parsed in; "" or "Local" for host time
	TasksFile string `yaml:"tasks_file"` // Optional YAML task file loaded at startup

	// RatePerSec throttles mutating API calls. 0 disables throttling.
	RatePerSec float64 `yaml:"rate_per_sec"`
	RateBurst  int     `yaml:"rate_burst"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		LogLevel:        "info",
		LogFormat:       "text",
		RatePerSec:      0,
		RateBurst:       10,
		ShutdownTimeout: 5 * time.Second,
	}
}

// LoadFile reads a YAML config file and overlays it onto cfg. Fields the
// file leaves out keep their current values.
func LoadFile(path string, cfg ServerConfig) (ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c ServerConfig) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if _, err := logging.LookupLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.RatePerSec < 0 {
		errs = append(errs, fmt.Errorf("rate_per_sec must not be negative, got %v", c.RatePerSec))
	}
	if c.RatePerSec > 0 && c.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("rate_burst must be at least 1 when throttling, got %d", c.RateBurst))
	}
	return errors.Join(errs...)
}

// Location resolves Timezone.
func (c ServerConfig) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
