package cliconfig

import "os"

// ApplyEnvConfig applies configuration from APPLIFECYCLE_* environment variables.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("marker-dir", os.Getenv(EnvPrefix+"MARKER_DIR"), &cfg.MarkerDir)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv(EnvPrefix+"LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setDuration("debounce", os.Getenv(EnvPrefix+"DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}
	if err := s.setBoolFromString("watch", os.Getenv(EnvPrefix+"WATCH"), &cfg.Watch); err != nil {
		return err
	}
	if err := s.setBoolFromString("quiet", os.Getenv(EnvPrefix+"QUIET"), &cfg.Quiet); err != nil {
		return err
	}

	return nil
}
