package config

import (
	"testing"
	"time"
)

func expectPanic(t *testing.T, name string) {
	t.Helper()
	if r := recover(); r == nil {
		t.Errorf("%s should have panicked", name)
	}
}

func TestRequireEnv(t *testing.T) {
	t.Run("variable set", func(t *testing.T) {
		t.Setenv("NAV_TEST_VAR", "test_value")
		if got := requireEnv("NAV_TEST_VAR"); got != "test_value" {
			t.Errorf("requireEnv() = %v, want test_value", got)
		}
	})

	t.Run("variable not set", func(t *testing.T) {
		defer expectPanic(t, "requireEnv()")
		requireEnv("NAV_TEST_VAR_MISSING")
	})
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{name: "empty", in: "", expected: nil},
		{name: "single value", in: "nav.domain.ext", expected: []string{"nav.domain.ext"}},
		{name: "spaces and quotes", in: ` "10.0.0.0/8", '192.168.1.1' `, expected: []string{"10.0.0.0/8", "192.168.1.1"}},
		{name: "blank entries dropped", in: "a,, ,b", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.in)
			if len(got) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NAV_TEST_DURATION", tt.value)
			if got := mustDuration("NAV_TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NAV_TEST_BOOL", tt.value)
			if got := mustBool("NAV_TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("NAV_TEST_INT", "42")
	if got := getenvInt("NAV_TEST_INT", 1); got != 42 {
		t.Errorf("getenvInt() = %d, want 42", got)
	}
	t.Setenv("NAV_TEST_INT", "nope")
	if got := getenvInt("NAV_TEST_INT", 7); got != 7 {
		t.Errorf("getenvInt() with invalid value = %d, want 7", got)
	}
}

func TestLoadMemoryBackend(t *testing.T) {
	t.Setenv("NAV_KV_BACKEND", "memory")
	t.Setenv("NAV_AUTH_PASSWORD", "hunter2")
	t.Setenv("NAV_ALLOWED_HOSTS", "nav.domain.ext, localhost")
	t.Setenv("NAV_FAVICON_TTL", "1h")

	cfg := Load()
	if cfg.KVBackend != "memory" {
		t.Errorf("KVBackend = %q, want memory", cfg.KVBackend)
	}
	if cfg.AuthPassword != "hunter2" {
		t.Errorf("AuthPassword = %q", cfg.AuthPassword)
	}
	if len(cfg.AllowedHosts) != 2 {
		t.Errorf("AllowedHosts = %v", cfg.AllowedHosts)
	}
	if cfg.FaviconTTL != time.Hour {
		t.Errorf("FaviconTTL = %v, want 1h", cfg.FaviconTTL)
	}
	if cfg.RequestTimeout != 30*time.Second || cfg.MaxBodyBytes != 10<<20 {
		t.Errorf("defaults not applied: timeout=%v maxBody=%d", cfg.RequestTimeout, cfg.MaxBodyBytes)
	}
	if cfg.CORSOrigin != "*" {
		t.Errorf("CORSOrigin = %q, want *", cfg.CORSOrigin)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("redis settings should not load for memory backend")
	}
}

func TestLoadRedisRequiresAddr(t *testing.T) {
	t.Setenv("NAV_KV_BACKEND", "redis")
	t.Setenv("NAV_REDIS_ADDR", "")
	defer expectPanic(t, "Load()")
	Load()
}

func TestLoadRedisRequiresPassword(t *testing.T) {
	t.Setenv("NAV_KV_BACKEND", "redis")
	t.Setenv("NAV_REDIS_ADDR", "localhost:6379")
	t.Setenv("NAV_REDIS_PASSWORD", "")
	t.Setenv("NAV_REDIS_PASSWORD_REQUIRED", "true")
	defer expectPanic(t, "Load()")
	Load()
}

func TestLoadRedisOptionalPassword(t *testing.T) {
	t.Setenv("NAV_KV_BACKEND", "redis")
	t.Setenv("NAV_REDIS_ADDR", "localhost:6379")
	t.Setenv("NAV_REDIS_PASSWORD_REQUIRED", "false")
	t.Setenv("REDIS_POOL_SIZE", "4")

	cfg := Load()
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisPoolSize != 4 {
		t.Errorf("redis config = %q pool=%d", cfg.RedisAddr, cfg.RedisPoolSize)
	}
}

func TestLoadRemoteRequiresURL(t *testing.T) {
	t.Setenv("NAV_KV_BACKEND", "remote")
	t.Setenv("NAV_REMOTE_KV_URL", "")
	defer expectPanic(t, "Load()")
	Load()
}

func TestLoadUnknownBackend(t *testing.T) {
	t.Setenv("NAV_KV_BACKEND", "etcd")
	defer expectPanic(t, "Load()")
	Load()
}

func TestRedacted(t *testing.T) {
	cfg := &Config{AuthPassword: "secret", TokenSecret: "jwt", RedisPassword: "", RemoteKVToken: "tok"}
	r := cfg.Redacted()
	if r.AuthPassword != "***REDACTED***" || r.TokenSecret != "***REDACTED***" || r.RemoteKVToken != "***REDACTED***" {
		t.Errorf("secrets not redacted: %+v", r)
	}
	if r.RedisPassword != "" {
		t.Errorf("empty secret should stay empty")
	}
	if cfg.AuthPassword != "secret" {
		t.Errorf("Redacted() must not modify the receiver")
	}
}
