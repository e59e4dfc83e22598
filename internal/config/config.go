package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	defaultDatabase = "userorders"
)

type Config struct {
	Environment string // ENV: production, development, etc.
	Port        string

	MongoURI      string
	MongoDatabase string
	StoreBackend  string // mongo|memory

	RedisURI string // empty disables the user cache
	CacheTTL time.Duration

	AllowedOrigins []string
	TrustProxy     bool // read client IP from X-Forwarded-For

	BcryptCost     int
	RequestTimeout time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string // text|json
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	mongoURI := getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/"+defaultDatabase))

	cfg := &Config{
		Environment:    strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		Port:           getEnv("PORT", "3000"),
		MongoURI:       mongoURI,
		MongoDatabase:  getEnv("MONGODB_DATABASE", DatabaseNameFromURI(mongoURI)),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", StoreMongo)),
		RedisURI:       getEnv("REDIS_URI", ""),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.TrustProxy, err = getBoolEnv("TRUST_PROXY", false); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getIntEnv("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return nil, err
	}
	durations := []struct {
		key      string
		fallback time.Duration
		dst      *time.Duration
	}{
		{"CACHE_TTL", 10 * time.Minute, &cfg.CacheTTL},
		{"REQUEST_TIMEOUT", 5 * time.Second, &cfg.RequestTimeout},
		{"SERVER_READ_TIMEOUT", 10 * time.Second, &cfg.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", 15 * time.Second, &cfg.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", 60 * time.Second, &cfg.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", 10 * time.Second, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if *d.dst, err = getDurationEnv(d.key, d.fallback); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	switch c.StoreBackend {
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CacheEnabled reports whether a Redis URI was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURI != ""
}

// DatabaseNameFromURI extracts the database segment from a Mongo connection
// string (mongodb://host/db?opts), falling back to the default name.
func DatabaseNameFromURI(uri string) string {
	rest := uri
	if idx := strings.Index(rest, "://"); idx != -1 {
		rest = rest[idx+3:]
	}
	idx := strings.Index(rest, "/")
	if idx == -1 {
		return defaultDatabase
	}
	name := strings.SplitN(rest[idx+1:], "?", 2)[0]
	if name == "" {
		return defaultDatabase
	}
	return name
}

func parseOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return b, nil
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
