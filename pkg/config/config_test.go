package config

import (
	"os"
	"testing"
	"time"

	"github.com/platinummonkey/pslint/pkg/observability"
)

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns env value when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "TEST_VAR_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvBool tests the getEnvBool helper function
func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue bool
		envValue     string
		want         bool
	}{
		{
			name:         "returns true for 'true'",
			key:          "TEST_BOOL",
			defaultValue: false,
			envValue:     "true",
			want:         true,
		},
		{
			name:         "returns true for '1'",
			key:          "TEST_BOOL",
			defaultValue: false,
			envValue:     "1",
			want:         true,
		},
		{
			name:         "returns false for 'false'",
			key:          "TEST_BOOL",
			defaultValue: true,
			envValue:     "false",
			want:         false,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_BOOL_NOT_SET",
			defaultValue: true,
			envValue:     "",
			want:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvBool(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvInt tests the getEnvInt helper function
func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue int
		envValue     string
		want         int
	}{
		{
			name:         "returns parsed int",
			key:          "TEST_INT",
			defaultValue: 10,
			envValue:     "42",
			want:         42,
		},
		{
			name:         "returns default for invalid int",
			key:          "TEST_INT",
			defaultValue: 10,
			envValue:     "invalid",
			want:         10,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_INT_NOT_SET",
			defaultValue: 10,
			envValue:     "",
			want:         10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvInt(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvDuration tests the getEnvDuration helper function
func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue time.Duration
		envValue     string
		want         time.Duration
	}{
		{
			name:         "returns parsed duration",
			key:          "TEST_DURATION",
			defaultValue: 10 * time.Second,
			envValue:     "30s",
			want:         30 * time.Second,
		},
		{
			name:         "returns default for invalid duration",
			key:          "TEST_DURATION",
			defaultValue: 10 * time.Second,
			envValue:     "invalid",
			want:         10 * time.Second,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_DURATION_NOT_SET",
			defaultValue: 10 * time.Second,
			envValue:     "",
			want:         10 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvDuration(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestLoadServerConfig tests the loadServerConfig function
func TestLoadServerConfig(t *testing.T) {
	envVars := []string{
		"PSLINT_HOST",
		"PSLINT_PORT",
		"PSLINT_READ_TIMEOUT",
		"PSLINT_WRITE_TIMEOUT",
		"PSLINT_IDLE_TIMEOUT",
		"PSLINT_SHUTDOWN_TIMEOUT",
		"PSLINT_HEALTH_PORT",
		"PSLINT_MAX_BODY_BYTES",
	}
	originalEnv := make(map[string]string)
	for _, k := range envVars {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	tests := []struct {
		name string
		env  map[string]string
		want ServerConfig
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: ServerConfig{
				Host:            "0.0.0.0",
				Port:            "8080",
				ReadTimeout:     15 * time.Second,
				WriteTimeout:    15 * time.Second,
				IdleTimeout:     60 * time.Second,
				ShutdownTimeout: 30 * time.Second,
				HealthPort:      "9090",
				MaxBodyBytes:    10 * 1024 * 1024,
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"PSLINT_HOST":             "localhost",
				"PSLINT_PORT":             "3000",
				"PSLINT_READ_TIMEOUT":     "30s",
				"PSLINT_WRITE_TIMEOUT":    "30s",
				"PSLINT_IDLE_TIMEOUT":     "120s",
				"PSLINT_SHUTDOWN_TIMEOUT": "60s",
				"PSLINT_HEALTH_PORT":      "9091",
				"PSLINT_MAX_BODY_BYTES":   "1048576",
			},
			want: ServerConfig{
				Host:            "localhost",
				Port:            "3000",
				ReadTimeout:     30 * time.Second,
				WriteTimeout:    30 * time.Second,
				IdleTimeout:     120 * time.Second,
				ShutdownTimeout: 60 * time.Second,
				HealthPort:      "9091",
				MaxBodyBytes:    1048576,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range envVars {
				os.Unsetenv(k)
			}
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			got := loadServerConfig()
			if got != tt.want {
				t.Errorf("loadServerConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestLoadLintConfig tests the loadLintConfig function
func TestLoadLintConfig(t *testing.T) {
	envVars := []string{
		"PSLINT_CONFIG",
		"PSLINT_WORKSPACE",
		"PSLINT_PARALLELISM",
		"PSLINT_CACHE_SIZE",
		"PSLINT_CACHE_TTL",
	}
	originalEnv := make(map[string]string)
	for _, k := range envVars {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("defaults", func(t *testing.T) {
		for _, k := range envVars {
			os.Unsetenv(k)
		}

		cfg := loadLintConfig()
		if cfg.ConfigPath != "" {
			t.Errorf("ConfigPath = %v, want empty", cfg.ConfigPath)
		}
		if cfg.Workspace != "." {
			t.Errorf("Workspace = %v, want .", cfg.Workspace)
		}
		if cfg.Parallelism != 0 {
			t.Errorf("Parallelism = %v, want 0", cfg.Parallelism)
		}
		if cfg.CacheSize != 256 {
			t.Errorf("CacheSize = %v, want 256", cfg.CacheSize)
		}
		if cfg.CacheTTL != 5*time.Minute {
			t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		for _, k := range envVars {
			os.Unsetenv(k)
		}

		os.Setenv("PSLINT_CONFIG", "/etc/pslint/pslint.yaml")
		os.Setenv("PSLINT_WORKSPACE", "/srv/scripts")
		os.Setenv("PSLINT_PARALLELISM", "4")
		os.Setenv("PSLINT_CACHE_SIZE", "512")
		os.Setenv("PSLINT_CACHE_TTL", "10m")

		cfg := loadLintConfig()
		if cfg.ConfigPath != "/etc/pslint/pslint.yaml" {
			t.Errorf("ConfigPath = %v, want /etc/pslint/pslint.yaml", cfg.ConfigPath)
		}
		if cfg.Workspace != "/srv/scripts" {
			t.Errorf("Workspace = %v, want /srv/scripts", cfg.Workspace)
		}
		if cfg.Parallelism != 4 {
			t.Errorf("Parallelism = %v, want 4", cfg.Parallelism)
		}
		if cfg.CacheSize != 512 {
			t.Errorf("CacheSize = %v, want 512", cfg.CacheSize)
		}
		if cfg.CacheTTL != 10*time.Minute {
			t.Errorf("CacheTTL = %v, want 10m", cfg.CacheTTL)
		}
	})
}

// TestLoadObservabilityConfig tests the loadObservabilityConfig function
func TestLoadObservabilityConfig(t *testing.T) {
	envVars := []string{
		"PSLINT_LOG_LEVEL",
		"PSLINT_METRICS_ENABLED",
		"PSLINT_OTEL_ENABLED",
		"PSLINT_OTEL_ENDPOINT",
		"PSLINT_OTEL_SERVICE_NAME",
		"PSLINT_OTEL_SERVICE_VERSION",
		"PSLINT_OTEL_INSECURE",
	}
	originalEnv := make(map[string]string)
	for _, k := range envVars {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	tests := []struct {
		name string
		env  map[string]string
		want ObservabilityConfig
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: ObservabilityConfig{
				LogLevel:           observability.InfoLevel,
				MetricsEnabled:     true,
				OTelEnabled:        false,
				OTelEndpoint:       "localhost:4317",
				OTelServiceName:    "pslint",
				OTelServiceVersion: "dev",
				OTelInsecure:       true,
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"PSLINT_LOG_LEVEL":            "debug",
				"PSLINT_METRICS_ENABLED":      "false",
				"PSLINT_OTEL_ENABLED":         "true",
				"PSLINT_OTEL_ENDPOINT":        "otel-collector:4317",
				"PSLINT_OTEL_SERVICE_NAME":    "my-linter",
				"PSLINT_OTEL_SERVICE_VERSION": "2.0.0",
				"PSLINT_OTEL_INSECURE":        "false",
			},
			want: ObservabilityConfig{
				LogLevel:           observability.DebugLevel,
				MetricsEnabled:     false,
				OTelEnabled:        true,
				OTelEndpoint:       "otel-collector:4317",
				OTelServiceName:    "my-linter",
				OTelServiceVersion: "2.0.0",
				OTelInsecure:       false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range envVars {
				os.Unsetenv(k)
			}
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			got := loadObservabilityConfig()
			if got != tt.want {
				t.Errorf("loadObservabilityConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestConfigValidate tests the Config.Validate method
func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{
				Port:         "8080",
				HealthPort:   "9090",
				MaxBodyBytes: 1024,
			},
		}
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() unexpected error = %v", err)
		}
	})

	t.Run("missing server port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() expected error, got nil")
		}
	})

	t.Run("non-numeric server port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = "http"
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() expected error, got nil")
		}
	})

	t.Run("non-positive body cap", func(t *testing.T) {
		cfg := valid()
		cfg.Server.MaxBodyBytes = 0
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() expected error, got nil")
		}
	})

	t.Run("negative parallelism", func(t *testing.T) {
		cfg := valid()
		cfg.Lint.Parallelism = -1
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() expected error, got nil")
		}
	})

	t.Run("negative cache size", func(t *testing.T) {
		cfg := valid()
		cfg.Lint.CacheSize = -1
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() expected error, got nil")
		}
	})

	t.Run("otel enabled without endpoint", func(t *testing.T) {
		cfg := valid()
		cfg.Observability.OTelEnabled = true
		cfg.Observability.OTelEndpoint = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() expected error, got nil")
		}
	})
}

// TestServerConfigAddr tests the address helpers
func TestServerConfigAddr(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: "8080", HealthPort: "9090"}

	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %v, want 127.0.0.1:8080", got)
	}
	if got := cfg.HealthAddr(); got != "127.0.0.1:9090" {
		t.Errorf("HealthAddr() = %v, want 127.0.0.1:9090", got)
	}
}
