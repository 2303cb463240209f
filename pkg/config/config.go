package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/platinummonkey/pslint/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Lint configuration
	Lint LintConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string

	// Request body cap for POSTed script content
	MaxBodyBytes int64
}

// LintConfig holds lint engine settings
type LintConfig struct {
	// Path to a pslint.yaml rule config; empty means defaults
	ConfigPath string

	// Workspace directory for path-based lint requests
	Workspace string

	// Concurrent file lint limit; 0 means GOMAXPROCS
	Parallelism int

	// Parsed-tree cache
	CacheSize int
	CacheTTL  time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Lint:          loadLintConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("PSLINT_HOST", "0.0.0.0"),
		Port:            getEnv("PSLINT_PORT", "8080"),
		ReadTimeout:     getEnvDuration("PSLINT_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("PSLINT_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("PSLINT_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("PSLINT_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("PSLINT_HEALTH_PORT", "9090"),
		MaxBodyBytes:    getEnvInt64("PSLINT_MAX_BODY_BYTES", 10*1024*1024),
	}
}

// loadLintConfig loads lint engine configuration from environment
func loadLintConfig() LintConfig {
	return LintConfig{
		ConfigPath:  getEnv("PSLINT_CONFIG", ""),
		Workspace:   getEnv("PSLINT_WORKSPACE", "."),
		Parallelism: getEnvInt("PSLINT_PARALLELISM", 0),
		CacheSize:   getEnvInt("PSLINT_CACHE_SIZE", 256),
		CacheTTL:    getEnvDuration("PSLINT_CACHE_TTL", 5*time.Minute),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           observability.ParseLogLevel(getEnv("PSLINT_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("PSLINT_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("PSLINT_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("PSLINT_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("PSLINT_OTEL_SERVICE_NAME", "pslint"),
		OTelServiceVersion: getEnv("PSLINT_OTEL_SERVICE_VERSION", "dev"),
		OTelInsecure:       getEnvBool("PSLINT_OTEL_INSECURE", true),
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid server port %q: %w", c.Server.Port, err)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if c.Lint.Parallelism < 0 {
		return fmt.Errorf("parallelism cannot be negative")
	}
	if c.Lint.CacheSize < 0 {
		return fmt.Errorf("cache size cannot be negative")
	}
	if c.Observability.OTelEnabled && c.Observability.OTelEndpoint == "" {
		return fmt.Errorf("OTel endpoint required when OTel is enabled")
	}
	return nil
}

// Addr returns the server listen address
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// HealthAddr returns the health server listen address
func (c *ServerConfig) HealthAddr() string {
	return c.Host + ":" + c.HealthPort
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
