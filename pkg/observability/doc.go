// Package observability provides structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// # Overview
//
// This package centralizes observability infrastructure including JSON logging, metrics
// collection, health checks, and distributed tracing integration.
//
// # Structured Logging
//
// Create logger:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.Info("Server started")
//
// Context-aware logging:
//
//	logger.WithField("request_id", reqID).WithError(err).Error("Request failed")
//
// # Prometheus Metrics
//
// Initialize metrics:
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/lint", "200").Inc()
//
// Lint metrics:
//
//	metrics.RecordDiagnostics("deploy.ps1", 3)
//	metrics.RecordRuleFault("function-naming")
//
// # Health Checks
//
// Configure health checker:
//
//	checker := observability.NewHealthChecker()
//	checker.AddCheck("workspace", observability.WorkspaceCheck("/srv/scripts"))
//	status := checker.Check(ctx)
//
// # OpenTelemetry
//
// Initialize tracing and metrics export:
//
//	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
//		Enabled:     true,
//		Endpoint:    "localhost:4317",
//		ServiceName: "pslint",
//	}, logger)
//	defer observability.ShutdownOTel(ctx, providers, logger)
//
// # Related Packages
//
//   - pkg/api: Wires metrics and logging into HTTP handlers
//   - pkg/config: Loads observability settings from the environment
package observability
