package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:         "5000",
				SQLiteDBPath: filepath.Join(tmp, "fintrack.db"),
				SettingsFile: "user_config.json",
				ErrorLogFile: "error.log",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:         "abc",
				SQLiteDBPath: filepath.Join(tmp, "fintrack.db"),
				SettingsFile: "user_config.json",
				ErrorLogFile: "error.log",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:         "70000",
				SQLiteDBPath: filepath.Join(tmp, "fintrack.db"),
				SettingsFile: "user_config.json",
				ErrorLogFile: "error.log",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "missing database path",
			config: Config{
				Port:         "5000",
				SettingsFile: "user_config.json",
				ErrorLogFile: "error.log",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "missing settings file path",
			config: Config{
				Port:         "5000",
				SQLiteDBPath: filepath.Join(tmp, "fintrack.db"),
				ErrorLogFile: "error.log",
			},
			wantErr:     true,
			errorString: "settings file path cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "5000" {
		t.Errorf("default port = %s, want 5000", cfg.Port)
	}
	if cfg.SettingsFile != "user_config.json" {
		t.Errorf("default settings file = %s", cfg.SettingsFile)
	}
}
