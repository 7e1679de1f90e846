package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/applifecycle/pkg/log"
)

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "APPLIFECYCLE_"

// Config holds CLI configuration for applifecycle.
type Config struct {
	MarkerDir string
	LogLevel  string
	LogFormat string
	Watch     bool
	Debounce  time.Duration
	Quiet     bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: log.FormatConsole,
		Debounce:  100 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = log.FormatConsole
	}
	if c.LogFormat != log.FormatConsole && c.LogFormat != log.FormatJSON {
		return fmt.Errorf("log format must be %q or %q, got %q", log.FormatConsole, log.FormatJSON, c.LogFormat)
	}

	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}

	if c.MarkerDir != "" {
		c.MarkerDir = filepath.Clean(c.MarkerDir)
	}
	return nil
}

// NewLogger builds the zerolog-backed logger described by the configuration.
// Call Validate first.
func (c *Config) NewLogger() *log.ZerologAdapter {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return log.NewZerologAdapter(os.Stderr, c.LogFormat, level)
}

// Logger returns the bootstrap logger used before configuration is loaded.
func Logger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
