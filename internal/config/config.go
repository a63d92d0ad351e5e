// Package config loads vocab-drill settings from a YAML file, a .env file
// and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/vocab-drill/internal/session"
	"github.com/rcliao/vocab-drill/internal/srs"
)

// Environment variables read by Load.
const (
	EnvConfig   = "VOCAB_DRILL_CONFIG"
	EnvDB       = "VOCAB_DRILL_DB"
	EnvLogLevel = "VOCAB_DRILL_LOG_LEVEL"
	EnvAddr     = "VOCAB_DRILL_ADDR"
)

// Config holds runtime settings. Zero values are filled by defaults.
type Config struct {
	DBPath           string        `yaml:"db_path"`
	IntervalsMinutes []int         `yaml:"intervals_minutes"`
	Cooldown         time.Duration `yaml:"cooldown"`
	LogLevel         string        `yaml:"log_level"`
	LogFormat        string        `yaml:"log_format"` // json | console
	Addr             string        `yaml:"addr"`
}

// Dir is the per-user data directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vocab-drill")
}

// DefaultPath returns the config file location: $VOCAB_DRILL_CONFIG or
// ~/.vocab-drill/config.yaml.
func DefaultPath() string {
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads .env (if present), then the YAML file at path (if present),
// then environment overrides. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if path == "" {
		path = DefaultPath()
	}

	c := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	c.applyEnv()
	c.defaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Addr = v
	}
}

func (c *Config) defaults() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(Dir(), "vocab.db")
	}
	if len(c.IntervalsMinutes) == 0 {
		c.IntervalsMinutes = srs.DefaultIntervals.Minutes()
	}
	if c.Cooldown == 0 {
		c.Cooldown = session.DefaultCooldown
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
	if c.Addr == "" {
		c.Addr = "127.0.0.1:8765"
	}
}

// Validate checks the interval table, cooldown and log format.
func (c *Config) Validate() error {
	if _, err := c.Intervals(); err != nil {
		return err
	}
	if c.Cooldown < session.MinCooldown {
		return fmt.Errorf("config: cooldown %v below minimum %v", c.Cooldown, session.MinCooldown)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log format %q (valid: json, console)", c.LogFormat)
	}
	return nil
}

// Intervals returns the configured review table.
func (c *Config) Intervals() (srs.Intervals, error) {
	return srs.IntervalsFromMinutes(c.IntervalsMinutes)
}
