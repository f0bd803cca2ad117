package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline, covers outbound WebDAV calls
	MaxBodyBytes    int64         // request body cap

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Auth gate
	AuthPassword string        // shared password, plaintext or bcrypt hash (empty = open)
	TokenSecret  string        // enables bearer session tokens
	TokenTTL     time.Duration // session token lifetime

	FaviconTTL time.Duration // default TTL for cached favicons

	// KV backend
	KVBackend string // "redis" | "remote" | "memory"
	KVPrefix  string // key namespace (redis only)

	// Remote KV API
	RemoteKVURL           string
	RemoteKVToken         string
	RemoteKVSigningSecret string

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Outbound HTTP (WebDAV, remote KV)
	OutboundProxy   string        // optional socks5:// proxy
	OutboundTimeout time.Duration // per outbound request

	// Access restrictions
	CORSOrigin   string   // Access-Control-Allow-Origin value
	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict operational endpoints to these IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Rate limiting of mutating API routes
	RateLimitBurst  int
	RateLimitPerMin int
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("NAV_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("NAV_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("NAV_REQUEST_TIMEOUT", 30*time.Second),
		MaxBodyBytes:    int64(getenvInt("NAV_MAX_BODY_BYTES", 10<<20)),

		// Logging
		LogLevel:  getenv("NAV_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NAV_PRETTY_LOG", true),

		// Auth
		AuthPassword: getenv("NAV_AUTH_PASSWORD", ""),
		TokenSecret:  getenv("NAV_TOKEN_SECRET", ""),
		TokenTTL:     mustDuration("NAV_TOKEN_TTL", 7*24*time.Hour),

		FaviconTTL: mustDuration("NAV_FAVICON_TTL", 30*24*time.Hour),

		// KV
		KVBackend: strings.ToLower(getenv("NAV_KV_BACKEND", "redis")),
		KVPrefix:  getenv("NAV_KV_PREFIX", "navstash:"),

		// Outbound
		OutboundProxy:   getenv("NAV_OUTBOUND_PROXY", ""),
		OutboundTimeout: mustDuration("NAV_OUTBOUND_TIMEOUT", 15*time.Second),

		// Access restrictions
		CORSOrigin:   getenv("NAV_CORS_ORIGIN", "*"),
		AllowedHosts: splitAndTrim(getenv("NAV_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("NAV_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("NAV_TRUST_PROXY", false),

		RateLimitBurst:  getenvInt("NAV_RATE_LIMIT_BURST", 20),
		RateLimitPerMin: getenvInt("NAV_RATE_LIMIT_PER_MIN", 30),
	}

	switch cfg.KVBackend {
	case "redis":
		loadRedis(cfg)
	case "remote":
		cfg.RemoteKVURL = requireEnv("NAV_REMOTE_KV_URL")
		cfg.RemoteKVToken = getenv("NAV_REMOTE_KV_TOKEN", "")
		cfg.RemoteKVSigningSecret = getenv("NAV_REMOTE_KV_SIGNING_SECRET", "")
	case "memory":
	default:
		panic(fmt.Sprintf("❌ FATAL: NAV_KV_BACKEND must be redis, remote or memory, got %q", cfg.KVBackend))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("NAV_REDIS_ADDR")
	cfg.RedisUser = getenv("NAV_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("NAV_REDIS_PASSWORD_REQUIRED", true)
	cfg.RedisPassword = getenv("NAV_REDIS_PASSWORD", "")
	cfg.RedisDB = getenvInt("NAV_REDIS_DB", 0)
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: NAV_REDIS_PASSWORD is required when NAV_REDIS_PASSWORD_REQUIRED=true")
	}
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	for _, s := range []*string{
		&cp.AuthPassword, &cp.TokenSecret, &cp.RedisPassword,
		&cp.RemoteKVToken, &cp.RemoteKVSigningSecret, &cp.OutboundProxy,
	} {
		if *s != "" {
			*s = "***REDACTED***"
		}
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
