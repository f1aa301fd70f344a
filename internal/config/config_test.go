package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      int
		expected int
	}{
		{
			name:     "valid integer",
			key:      "TEST_INT",
			value:    "42",
			def:      7,
			expected: 42,
		},
		{
			name:     "invalid integer falls back to default",
			key:      "TEST_INT_INVALID",
			value:    "not_a_number",
			def:      7,
			expected: 7,
		},
		{
			name:     "missing variable falls back to default",
			key:      "TEST_INT_MISSING",
			def:      7,
			expected: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			result := getenvInt(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration falls back to default",
			key:      "TEST_DURATION_INVALID",
			value:    "soon",
			def:      1 * time.Second,
			expected: 1 * time.Second,
		},
		{
			name:     "missing variable falls back to default",
			key:      "TEST_DURATION_MISSING",
			def:      2 * time.Minute,
			expected: 2 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{name: "true", key: "TEST_BOOL_T", value: "true", def: false, expected: true},
		{name: "false", key: "TEST_BOOL_F", value: "false", def: true, expected: false},
		{name: "garbage falls back", key: "TEST_BOOL_G", value: "yep", def: true, expected: true},
		{name: "missing falls back", key: "TEST_BOOL_M", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("HEYWISH_DATABASE_URL", "postgres://localhost/heywish_test?sslmode=disable")
	t.Setenv("HEYWISH_PUBLIC_BASE_URL", "https://heywish.example")
	t.Setenv("HEYWISH_LISTEN_PORT", ":9999")
	t.Setenv("HEYWISH_RATE_BURST", "5")

	// Clear optional settings that may leak in from the environment.
	for _, key := range []string{"HEYWISH_REDIS_ADDR", "HEYWISH_SEED_FILE"} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}

	cfg := Load()

	if cfg.ListenPort != ":9999" {
		t.Errorf("ListenPort = %q, want :9999", cfg.ListenPort)
	}
	if cfg.DatabaseURL == "" {
		t.Error("DatabaseURL should be set")
	}
	if cfg.PublicBaseURL != "https://heywish.example" {
		t.Errorf("PublicBaseURL = %q", cfg.PublicBaseURL)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty (cache disabled)", cfg.RedisAddr)
	}
	if cfg.RateBurst != 5 {
		t.Errorf("RateBurst = %d, want 5", cfg.RateBurst)
	}
	if cfg.PurgeInterval != 24*time.Hour {
		t.Errorf("PurgeInterval = %v, want 24h", cfg.PurgeInterval)
	}
	if cfg.SnapshotTTL != 5*time.Minute {
		t.Errorf("SnapshotTTL = %v, want 5m", cfg.SnapshotTTL)
	}
}
