package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend selectors.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StoreBackend  string // "memory" | "redis"
	StorageBudget int    // byte budget for the memory backend (0 = unlimited)

	SeedFile        string        // path to seed content yaml (optional, empty = no seeding)
	DefaultLanguage string        // "vi" | "en"
	BackupInterval  time.Duration // interval between automatic backups (default: 6h)
	MaxBackups      int           // rotating backups kept (default: 10)

	CORSOrigins []string // allowed origins for the admin API (empty = allow all)

	// Redis (required only when StoreBackend == "redis")
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
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SONGNGU_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SONGNGU_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SONGNGU_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SONGNGU_PRETTY_LOG", true),

		// Storage
		StoreBackend:  getenv("SONGNGU_STORE_BACKEND", BackendMemory),
		StorageBudget: getenvInt("SONGNGU_STORAGE_BUDGET", 0),

		// Content
		SeedFile:        getenv("SONGNGU_SEED_FILE", ""),
		DefaultLanguage: getenv("SONGNGU_DEFAULT_LANGUAGE", "vi"),
		BackupInterval:  mustDuration("SONGNGU_BACKUP_INTERVAL", 6*time.Hour),
		MaxBackups:      getenvInt("SONGNGU_MAX_BACKUPS", 10),

		CORSOrigins: splitAndTrim(getenv("SONGNGU_CORS_ORIGINS", "")),

		// Redis settings
		RedisAddr:             getenv("SONGNGU_REDIS_ADDR", ""),
		RedisUser:             getenv("SONGNGU_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SONGNGU_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("SONGNGU_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("SONGNGU_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
	}

	if cfg.StoreBackend != BackendMemory && cfg.StoreBackend != BackendRedis {
		panic(fmt.Sprintf("❌ FATAL: SONGNGU_STORE_BACKEND must be %q or %q, got %q",
			BackendMemory, BackendRedis, cfg.StoreBackend))
	}
	if cfg.StoreBackend == BackendRedis && cfg.RedisAddr == "" {
		panic("❌ FATAL: SONGNGU_REDIS_ADDR is required when SONGNGU_STORE_BACKEND=redis")
	}
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: SONGNGU_REDIS_PASSWORD is required when SONGNGU_REDIS_PASSWORD_REQUIRED=true")
	}
	if cfg.DefaultLanguage != "vi" && cfg.DefaultLanguage != "en" {
		panic(fmt.Sprintf("❌ FATAL: SONGNGU_DEFAULT_LANGUAGE must be \"vi\" or \"en\", got %q", cfg.DefaultLanguage))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
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
