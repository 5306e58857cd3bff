package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name:    "defaults",
			config:  *Default(),
			wantErr: false,
		},
		{
			name: "valid json backend",
			config: Config{
				Port:         "9000",
				DataBackend:  BackendJSON,
				SnapshotPath: "./ledger.json",
				LogLevel:     "debug",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:         "abc",
				DataBackend:  BackendSQLite,
				SQLiteDBPath: "./test.db",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:         "70000",
				DataBackend:  BackendSQLite,
				SQLiteDBPath: "./test.db",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "unknown backend",
			config: Config{
				Port:        "8080",
				DataBackend: "memory",
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "invalid data backend 'memory'",
		},
		{
			name: "sqlite without path",
			config: Config{
				Port:        "8080",
				DataBackend: BackendSQLite,
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "json without path",
			config: Config{
				Port:        "8080",
				DataBackend: BackendJSON,
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "snapshot path cannot be empty",
		},
		{
			name: "unknown log level",
			config: Config{
				Port:         "8080",
				DataBackend:  BackendSQLite,
				SQLiteDBPath: "./test.db",
				LogLevel:     "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
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
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{Port: "x", DataBackend: "mongo", LogLevel: "loud"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if n := strings.Count(err.Error(), "\n- "); n != 3 {
		t.Errorf("got %d errors, want 3:\n%v", n, err)
	}
}

func TestLoad(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_BACKEND", "SQLITE_DB_PATH", "SNAPSHOT_PATH", "LOG_LEVEL", "METRICS_ENABLED"} {
		t.Setenv(key, "")
	}

	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if *cfg != *Default() {
			t.Errorf("cfg = %+v, want defaults", cfg)
		}
	})

	path := filepath.Join(t.TempDir(), "paydown.toml")
	content := `
port = "9090"
data_backend = "json"
snapshot_path = "/tmp/ledger.json"
metrics_enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Port != "9090" || cfg.DataBackend != BackendJSON || cfg.SnapshotPath != "/tmp/ledger.json" {
			t.Errorf("file values not applied: %+v", cfg)
		}
		if cfg.MetricsEnabled {
			t.Error("MetricsEnabled = true, want false from file")
		}
		if cfg.LogLevel != "info" {
			t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("PORT", "7070")
		t.Setenv("METRICS_ENABLED", "true")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Port != "7070" || !cfg.MetricsEnabled {
			t.Errorf("env values not applied: %+v", cfg)
		}
		if cfg.DataBackend != BackendJSON {
			t.Errorf("DataBackend = %q, want json from file", cfg.DataBackend)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
