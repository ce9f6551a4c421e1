package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	Elasticsearch ElasticsearchConfig
	Snapshot      SnapshotConfig
	Cache         CacheConfig
	RateLimit     RateLimitConfig
	Log           LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ElasticsearchConfig holds primary search backend configuration
type ElasticsearchConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Addresses      []string      `mapstructure:"addresses"`
	Index          string        `mapstructure:"index"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	FacetSize      int           `mapstructure:"facet_size"`
}

// SnapshotConfig holds the fallback document snapshot configuration
type SnapshotConfig struct {
	Path     string        `mapstructure:"path"`
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory", "redis" or "none"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP   int `mapstructure:"per_ip"`  // requests per minute per client IP, 0 disables
	Backend int `mapstructure:"backend"` // backend search requests per second, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/catalogsearch/")

	// Environment variable settings
	v.SetEnvPrefix("CATALOGSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env if present without overriding variables already set
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:8000"})
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Elasticsearch defaults
	v.SetDefault("elasticsearch.enabled", true)
	v.SetDefault("elasticsearch.addresses", []string{"http://localhost:9200"})
	v.SetDefault("elasticsearch.index", "scuffers_products")
	v.SetDefault("elasticsearch.probe_timeout", "1s")
	v.SetDefault("elasticsearch.request_timeout", "10s")
	v.SetDefault("elasticsearch.max_retries", 0)
	v.SetDefault("elasticsearch.facet_size", 100)

	// Snapshot defaults
	v.SetDefault("snapshot.path", "scuffers_output.json")
	v.SetDefault("snapshot.watch", true)
	v.SetDefault("snapshot.debounce", "250ms")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "30s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 600)
	v.SetDefault("ratelimit.backend", 50)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set CATALOGSEARCH_SERVER_PORT)")
	}

	if config.Elasticsearch.Enabled {
		if len(config.Elasticsearch.Addresses) == 0 {
			return fmt.Errorf("at least one Elasticsearch address is required when elasticsearch is enabled")
		}
		if config.Elasticsearch.Index == "" {
			return fmt.Errorf("Elasticsearch index is required when elasticsearch is enabled")
		}
		if config.Elasticsearch.ProbeTimeout <= 0 {
			return fmt.Errorf("elasticsearch probe_timeout must be positive, got: %s", config.Elasticsearch.ProbeTimeout)
		}
	}

	if config.Snapshot.Path == "" {
		return fmt.Errorf("snapshot path is required (set CATALOGSEARCH_SNAPSHOT_PATH)")
	}

	switch config.Cache.Type {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'none', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Backend < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	return nil
}
