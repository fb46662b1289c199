package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rednote-ops/internal/storage"
)

var envVars = []string{
	"LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL", "IMAGE_MODEL", "IMAGE_SIZE",
	"STORAGE_DRIVER", "DB_PATH", "STORAGE_QUOTA_BYTES", "STORAGE_KEY",
	"API_PORT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv empties every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			setupEnv: func(t *testing.T) {
				t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "notes.db"))
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.StorageDriver != storage.DriverSQLite {
					t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, storage.DriverSQLite)
				}
				if cfg.StorageQuotaBytes != 5242880 {
					t.Errorf("StorageQuotaBytes = %d, want 5242880", cfg.StorageQuotaBytes)
				}
				if cfg.StorageKey != "rednote_ops_saved_v1" {
					t.Errorf("StorageKey = %q", cfg.StorageKey)
				}
				if cfg.APIPort != "9000" || cfg.ImageSize != "1024x1536" {
					t.Errorf("APIPort = %q, ImageSize = %q", cfg.APIPort, cfg.ImageSize)
				}
				if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
					t.Errorf("LogLevel = %v, LogFormat = %q", cfg.LogLevel, cfg.LogFormat)
				}
				if _, err := os.Stat(filepath.Dir(cfg.DBPath)); err != nil {
					t.Errorf("data directory not created: %v", err)
				}
			},
		},
		{
			name: "overrides",
			setupEnv: func(t *testing.T) {
				t.Setenv("STORAGE_DRIVER", "memory")
				t.Setenv("STORAGE_QUOTA_BYTES", "1024")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "json")
				t.Setenv("RATE_LIMIT_RPS", "0.5")
				t.Setenv("LLM_MODEL", "qwen-plus")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.StorageDriver != storage.DriverMemory || cfg.StorageQuotaBytes != 1024 {
					t.Errorf("storage = %q/%d", cfg.StorageDriver, cfg.StorageQuotaBytes)
				}
				if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
					t.Errorf("LogLevel = %v, LogFormat = %q", cfg.LogLevel, cfg.LogFormat)
				}
				if cfg.RateLimitRPS != 0.5 || cfg.LLMModel != "qwen-plus" {
					t.Errorf("RateLimitRPS = %v, LLMModel = %q", cfg.RateLimitRPS, cfg.LLMModel)
				}
			},
		},
		{
			name: "unknown driver",
			setupEnv: func(t *testing.T) {
				t.Setenv("STORAGE_DRIVER", "redis")
			},
			wantErr: true,
		},
		{
			name: "negative quota",
			setupEnv: func(t *testing.T) {
				t.Setenv("STORAGE_DRIVER", "memory")
				t.Setenv("STORAGE_QUOTA_BYTES", "-1")
			},
			wantErr: true,
		},
		{
			name: "quota not a number",
			setupEnv: func(t *testing.T) {
				t.Setenv("STORAGE_DRIVER", "memory")
				t.Setenv("STORAGE_QUOTA_BYTES", "5MB")
			},
			wantErr: true,
		},
		{
			name: "bad log format",
			setupEnv: func(t *testing.T) {
				t.Setenv("STORAGE_DRIVER", "memory")
				t.Setenv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name: "bad log level",
			setupEnv: func(t *testing.T) {
				t.Setenv("STORAGE_DRIVER", "memory")
				t.Setenv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Run from an empty directory so no .env file is picked up.
			chdir(t, t.TempDir())
			clearEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got config %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			tt.checkConfig(t, cfg)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	clearEnv(t)

	content := "STORAGE_DRIVER=memory\nAPI_PORT=9100\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	// Explicit environment wins over the file.
	t.Setenv("API_PORT", "9200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.StorageDriver != storage.DriverMemory {
		t.Errorf("StorageDriver = %q, want memory from .env", cfg.StorageDriver)
	}
	if cfg.APIPort != "9200" {
		t.Errorf("APIPort = %q, want 9200 from environment", cfg.APIPort)
	}
}

func TestConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: slog.LevelWarn, LogFormat: "json"}
	logger := cfg.NewLogger(&buf)

	logger.Info("dropped")
	logger.Warn("kept", "key", "v")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, `"msg":"kept"`) {
		t.Errorf("expected JSON record, got %q", out)
	}
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore Chdir(%q): %v", prev, err)
		}
	})
}
