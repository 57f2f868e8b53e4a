package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.StoreBackend != BackendMemory {
		t.Errorf("StoreBackend = %q, want memory", cfg.StoreBackend)
	}
	if cfg.DefaultLanguage != "vi" {
		t.Errorf("DefaultLanguage = %q, want vi", cfg.DefaultLanguage)
	}
	if cfg.BackupInterval != 6*time.Hour {
		t.Errorf("BackupInterval = %v, want 6h", cfg.BackupInterval)
	}
	if cfg.MaxBackups != 10 {
		t.Errorf("MaxBackups = %d, want 10", cfg.MaxBackups)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SONGNGU_LISTEN_PORT", ":9000")
	t.Setenv("SONGNGU_BACKUP_INTERVAL", "30m")
	t.Setenv("SONGNGU_MAX_BACKUPS", "5")
	t.Setenv("SONGNGU_DEFAULT_LANGUAGE", "en")
	t.Setenv("SONGNGU_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.ListenPort != ":9000" {
		t.Errorf("ListenPort = %q", cfg.ListenPort)
	}
	if cfg.BackupInterval != 30*time.Minute {
		t.Errorf("BackupInterval = %v", cfg.BackupInterval)
	}
	if cfg.MaxBackups != 5 {
		t.Errorf("MaxBackups = %d", cfg.MaxBackups)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q", cfg.DefaultLanguage)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("SONGNGU_STORE_BACKEND", "postgres")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should have panicked on unknown backend")
		}
	}()
	Load()
}

func TestLoadRequiresRedisAddrForRedisBackend(t *testing.T) {
	t.Setenv("SONGNGU_STORE_BACKEND", "redis")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should have panicked without a redis address")
		}
	}()
	Load()
}

func TestLoadRejectsUnknownLanguage(t *testing.T) {
	t.Setenv("SONGNGU_DEFAULT_LANGUAGE", "fr")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should have panicked on unknown language")
		}
	}()
	Load()
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{"valid duration", "90s", 90 * time.Second},
		{"invalid duration falls back", "ninety", time.Minute},
		{"empty falls back", "", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_DURATION", tt.value)
			}
			if got := mustDuration("TEST_DURATION", time.Minute); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "a", []string{"a"}},
		{"spaced", " a , b ", []string{"a", "b"}},
		{"quoted", `"a", 'b'`, []string{"a", "b"}},
		{"empty parts dropped", "a,,b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}
