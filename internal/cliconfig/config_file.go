package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	MarkerDir string `toml:"marker_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Watch     *bool  `toml:"watch"`
	Debounce  string `toml:"debounce"`
	Quiet     *bool  `toml:"quiet"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.applifecycle/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".applifecycle", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("marker-dir", fc.MarkerDir, &cfg.MarkerDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("quiet", fc.Quiet, &cfg.Quiet)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
