package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"APPLIFECYCLE_MARKER_DIR": "/env/markers",
				"APPLIFECYCLE_LOG_LEVEL":  "debug",
				"APPLIFECYCLE_LOG_FORMAT": "json",
				"APPLIFECYCLE_DEBOUNCE":   "250ms",
				"APPLIFECYCLE_WATCH":      "true",
				"APPLIFECYCLE_QUIET":      "1",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				MarkerDir: "/env/markers",
				LogLevel:  "debug",
				LogFormat: "json",
				Debounce:  250 * time.Millisecond,
				Watch:     true,
				Quiet:     true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"APPLIFECYCLE_MARKER_DIR": "/env/markers",
				"APPLIFECYCLE_LOG_LEVEL":  "debug",
			},
			changed:  map[string]bool{"marker-dir": true},
			initial:  Config{MarkerDir: "/flag/markers"},
			expected: Config{MarkerDir: "/flag/markers", LogLevel: "debug"},
		},
		{
			name:     "bool false overrides true",
			envVars:  map[string]string{"APPLIFECYCLE_WATCH": "false"},
			changed:  map[string]bool{},
			initial:  Config{Watch: true},
			expected: Config{Watch: false},
		},
		{
			name:     "returns error for invalid duration",
			envVars: map[string]string{"APPLIFECYCLE_DEBOUNCE": "soon"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid bool",
			envVars: map[string]string{"APPLIFECYCLE_QUIET": "maybe"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
