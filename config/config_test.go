package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdirTemp moves the test into an empty directory so no config.yaml or .env is picked up
func chdirTemp(t *testing.T) string {
	t.Helper()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		chdirTemp(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8000" {
			t.Errorf("Server.Port = %s, want 8000", cfg.Server.Port)
		}
		if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[0] != "http://localhost:3000" {
			t.Errorf("Server.AllowedOrigins = %v, want localhost:3000 and localhost:8000", cfg.Server.AllowedOrigins)
		}
		if !cfg.Elasticsearch.Enabled {
			t.Error("Elasticsearch.Enabled = false, want true")
		}
		if len(cfg.Elasticsearch.Addresses) != 1 || cfg.Elasticsearch.Addresses[0] != "http://localhost:9200" {
			t.Errorf("Elasticsearch.Addresses = %v, want [http://localhost:9200]", cfg.Elasticsearch.Addresses)
		}
		if cfg.Elasticsearch.Index != "scuffers_products" {
			t.Errorf("Elasticsearch.Index = %s, want scuffers_products", cfg.Elasticsearch.Index)
		}
		if cfg.Elasticsearch.ProbeTimeout != time.Second {
			t.Errorf("Elasticsearch.ProbeTimeout = %v, want 1s", cfg.Elasticsearch.ProbeTimeout)
		}
		if cfg.Snapshot.Path != "scuffers_output.json" {
			t.Errorf("Snapshot.Path = %s, want scuffers_output.json", cfg.Snapshot.Path)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 30*time.Second {
			t.Errorf("Cache.TTL = %v, want 30s", cfg.Cache.TTL)
		}
		if cfg.Log.Format != "json" {
			t.Errorf("Log.Format = %s, want json", cfg.Log.Format)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("CATALOGSEARCH_SERVER_PORT", "9090")
		t.Setenv("CATALOGSEARCH_SERVER_ENVIRONMENT", "production")
		t.Setenv("CATALOGSEARCH_ELASTICSEARCH_INDEX", "products_v2")
		t.Setenv("CATALOGSEARCH_ELASTICSEARCH_PROBE_TIMEOUT", "250ms")
		t.Setenv("CATALOGSEARCH_SNAPSHOT_PATH", "/data/products.json.gz")
		t.Setenv("CATALOGSEARCH_CACHE_TYPE", "redis")
		t.Setenv("CATALOGSEARCH_CACHE_REDIS_URL", "redis://localhost:6379")
		t.Setenv("CATALOGSEARCH_CACHE_TTL", "5m")
		t.Setenv("CATALOGSEARCH_RATELIMIT_PER_IP", "200")
		t.Setenv("CATALOGSEARCH_LOG_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Elasticsearch.Index != "products_v2" {
			t.Errorf("Elasticsearch.Index = %s, want products_v2", cfg.Elasticsearch.Index)
		}
		if cfg.Elasticsearch.ProbeTimeout != 250*time.Millisecond {
			t.Errorf("Elasticsearch.ProbeTimeout = %v, want 250ms", cfg.Elasticsearch.ProbeTimeout)
		}
		if cfg.Snapshot.Path != "/data/products.json.gz" {
			t.Errorf("Snapshot.Path = %s, want /data/products.json.gz", cfg.Snapshot.Path)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisURL != "redis://localhost:6379" {
			t.Errorf("Cache.RedisURL = %s, want redis://localhost:6379", cfg.Cache.RedisURL)
		}
		if cfg.Cache.TTL != 5*time.Minute {
			t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
		}
	})

	t.Run("reads config.yaml from the working directory", func(t *testing.T) {
		dir := chdirTemp(t)
		yaml := "server:\n  port: \"7000\"\nelasticsearch:\n  enabled: false\ncache:\n  type: none\n"
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
			t.Fatalf("Failed to write config.yaml: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7000" {
			t.Errorf("Server.Port = %s, want 7000", cfg.Server.Port)
		}
		if cfg.Elasticsearch.Enabled {
			t.Error("Elasticsearch.Enabled = true, want false")
		}
		if cfg.Cache.Type != "none" {
			t.Errorf("Cache.Type = %s, want none", cfg.Cache.Type)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("CATALOGSEARCH_CACHE_TYPE", "invalid")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation when redis URL missing for redis cache", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("CATALOGSEARCH_CACHE_TYPE", "redis")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing Redis URL")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdirTemp(t)

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		chdirTemp(t)

		envContent := `
# Comment line
TEST_VAR_1=value1
TEST_VAR_2=value2
# TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		t.Cleanup(func() {
			os.Unsetenv("TEST_VAR_1")
			os.Unsetenv("TEST_VAR_2")
		})

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8000"},
			Elasticsearch: ElasticsearchConfig{
				Enabled:      true,
				Addresses:    []string{"http://localhost:9200"},
				Index:        "scuffers_products",
				ProbeTimeout: time.Second,
			},
			Snapshot: SnapshotConfig{Path: "scuffers_output.json"},
			Cache:    CacheConfig{Type: "memory"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "validates successfully with all required fields", mutate: func(*Config) {}},
		{name: "fails when port is empty", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "fails when enabled backend has no addresses", mutate: func(c *Config) { c.Elasticsearch.Addresses = nil }, wantErr: true},
		{name: "fails when enabled backend has no index", mutate: func(c *Config) { c.Elasticsearch.Index = "" }, wantErr: true},
		{name: "fails for zero probe timeout", mutate: func(c *Config) { c.Elasticsearch.ProbeTimeout = 0 }, wantErr: true},
		{name: "ignores backend settings when disabled", mutate: func(c *Config) {
			c.Elasticsearch = ElasticsearchConfig{Enabled: false}
		}},
		{name: "fails when snapshot path is empty", mutate: func(c *Config) { c.Snapshot.Path = "" }, wantErr: true},
		{name: "fails for invalid cache type", mutate: func(c *Config) { c.Cache.Type = "invalid-type" }, wantErr: true},
		{name: "validates none cache type", mutate: func(c *Config) { c.Cache.Type = "none" }},
		{name: "validates redis cache type with URL", mutate: func(c *Config) {
			c.Cache = CacheConfig{Type: "redis", RedisURL: "redis://localhost:6379"}
		}},
		{name: "fails for redis cache without URL", mutate: func(c *Config) { c.Cache = CacheConfig{Type: "redis"} }, wantErr: true},
		{name: "fails for negative rate limit", mutate: func(c *Config) { c.RateLimit.PerIP = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
