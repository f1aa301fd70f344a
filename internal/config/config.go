package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DatabaseURL   string // Postgres DSN (required)
	MigrationsDir string // path to the migration files

	PublicBaseURL string // base URL used to compute share links (required)
	CookieSecure  bool   // Secure attribute on the reserver cookie (true in production)

	SeedFile string // optional YAML fixtures applied at startup (dev/demo)

	// Redis snapshot cache. Empty RedisAddr disables the cache entirely.
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration
	SnapshotTTL         time.Duration

	// Purge of soft-deleted rows.
	PurgeInterval  time.Duration
	PurgeThreshold time.Duration

	// Rate limiting on the public endpoints.
	RateBurst  int
	RatePerMin int
	TrustProxy bool // true => trust X-Forwarded-For headers (reverse proxy in front)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("HEYWISH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("HEYWISH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("HEYWISH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("HEYWISH_PRETTY_LOG", false),

		// Postgres
		DatabaseURL:   requireEnv("HEYWISH_DATABASE_URL"),
		MigrationsDir: getenv("HEYWISH_MIGRATIONS_DIR", "migrations"),

		// Public surface
		PublicBaseURL: requireEnv("HEYWISH_PUBLIC_BASE_URL"),
		CookieSecure:  mustBool("HEYWISH_COOKIE_SECURE", false),

		SeedFile: getenv("HEYWISH_SEED_FILE", ""),

		// Redis settings
		RedisAddr:           getenv("HEYWISH_REDIS_ADDR", ""),
		RedisPassword:       getenv("HEYWISH_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("HEYWISH_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("HEYWISH_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("HEYWISH_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("HEYWISH_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("HEYWISH_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("HEYWISH_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("HEYWISH_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("HEYWISH_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("HEYWISH_REDIS_PING_TIMEOUT", 5*time.Second),
		SnapshotTTL:         mustDuration("HEYWISH_SNAPSHOT_TTL", 5*time.Minute),

		// Purge of soft-deleted rows
		PurgeInterval:  mustDuration("HEYWISH_PURGE_INTERVAL", 24*time.Hour),
		PurgeThreshold: mustDuration("HEYWISH_PURGE_THRESHOLD", 30*24*time.Hour),

		// Public endpoint rate limiting
		RateBurst:  getenvInt("HEYWISH_RATE_BURST", 20),
		RatePerMin: getenvInt("HEYWISH_RATE_PER_MIN", 60),
		TrustProxy: mustBool("HEYWISH_TRUST_PROXY", true),
	}

	return cfg
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
