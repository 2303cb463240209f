// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	PSLINT_HOST="0.0.0.0"
//	PSLINT_PORT="8080"
//	PSLINT_HEALTH_PORT="9090"
//	PSLINT_READ_TIMEOUT="15s"
//	PSLINT_WRITE_TIMEOUT="15s"
//	PSLINT_MAX_BODY_BYTES="10485760"
//
// Lint settings:
//
//	PSLINT_CONFIG="/etc/pslint/pslint.yaml"
//	PSLINT_WORKSPACE="/srv/scripts"
//	PSLINT_PARALLELISM="4"      # 0 means GOMAXPROCS
//	PSLINT_CACHE_SIZE="256"
//	PSLINT_CACHE_TTL="5m"
//
// Observability settings:
//
//	PSLINT_LOG_LEVEL="info"  # debug, info, warn, error
//	PSLINT_METRICS_ENABLED="true"
//	PSLINT_OTEL_ENABLED="true"
//	PSLINT_OTEL_ENDPOINT="otel-collector:4317"
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Server: %s\n", cfg.Server.Addr())
//	fmt.Printf("Workspace: %s\n", cfg.Lint.Workspace)
//
// # Related Packages
//
//   - pkg/linter: Consumes the lint settings
//   - pkg/observability: Consumes the observability settings
package config
