package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Cache    CacheConfig    `yaml:"cache"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        string   `yaml:"port"`
	Env         string   `yaml:"env"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // "sqlite" or "postgres"
	DSN  string `yaml:"dsn"`
	Path string `yaml:"path"` // For SQLite: file path
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type CacheConfig struct {
	Backend   string        `yaml:"backend"` // "memory", "redis" or "none"
	TTL       time.Duration `yaml:"ttl"`
	RedisAddr string        `yaml:"redis_addr"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // OTLP/HTTP collector; empty means stdout
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file is loaded into
// the environment first if it exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	path := getEnv("CONFIG_FILE", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        "8080",
			Env:         "development",
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			Path: "./data/fps_trainer.db",
		},
		Logging: LoggingConfig{Level: "info"},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     60 * time.Second,
		},
		Tracing: TracingConfig{SampleRatio: 0.1},
	}
}

func (c *Config) applyEnv() error {
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.Env = getEnv("ENV", c.Server.Env)
	if origins, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = splitList(origins)
	}

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	c.Cache.Backend = getEnv("CACHE_BACKEND", c.Cache.Backend)
	c.Cache.RedisAddr = getEnv("REDIS_ADDR", c.Cache.RedisAddr)
	if raw, ok := os.LookupEnv("CACHE_TTL"); ok {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL %q: %w", raw, err)
		}
		c.Cache.TTL = ttl
	}

	if raw, ok := os.LookupEnv("OTEL_ENABLED"); ok {
		c.Tracing.Enabled = parseBool(raw)
	}
	c.Tracing.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.Endpoint)
	if raw, ok := os.LookupEnv("OTEL_EXPORTER_OTLP_INSECURE"); ok {
		c.Tracing.Insecure = parseBool(raw)
	}
	if raw, ok := os.LookupEnv("OTEL_SAMPLER_RATIO"); ok {
		ratio, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("invalid OTEL_SAMPLER_RATIO %q: %w", raw, err)
		}
		c.Tracing.SampleRatio = ratio
	}

	// DATABASE_URL wins over every other database setting.
	if url := strings.TrimSpace(os.Getenv("DATABASE_URL")); url != "" {
		c.Database.Type = typeFromURL(url)
		c.Database.DSN = url
		if c.Database.Type == "sqlite" {
			c.Database.Path = url
		}
		return nil
	}

	c.Database.Type = getEnv("DB_TYPE", c.Database.Type)
	if c.Database.DSN == "" || os.Getenv("DB_TYPE") != "" {
		c.Database.DSN, c.Database.Path = buildDSN(c.Database.Type, c.Database.Path)
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.Database.Type)
	}
	switch c.Cache.Backend {
	case "memory", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("CACHE_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLER_RATIO must be between 0 and 1")
	}
	return nil
}

// Address returns host:port for the HTTP listener.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func typeFromURL(url string) string {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

func buildDSN(dbType string, sqlitePath string) (string, string) {
	if dbType == "postgres" {
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbUser := getEnv("DB_USER", "postgres")
		dbPassword := getEnv("DB_PASSWORD", "postgres")
		dbName := getEnv("DB_NAME", "fps_trainer")
		sslMode := getEnv("DB_SSLMODE", "disable")

		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			dbHost, dbPort, dbUser, dbPassword, dbName, sslMode,
		)
		return dsn, ""
	}

	dbPath := getEnv("SQLITE_PATH", sqlitePath)
	dsn := dbPath + "?_foreign_keys=1&_busy_timeout=5000"
	return dsn, dbPath
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
