// Package api provides the HTTP API server for linting scripts as a service.
//
// # Overview
//
// This package implements the REST endpoints for linting inline script
// content or workspace files, and for introspecting the registered rule
// set. Handlers are wrapped in the shared middleware chain (recovery,
// request IDs, logging, content-type enforcement, body caps, timeouts)
// plus optional Prometheus metrics and OpenTelemetry tracing.
//
// # Endpoints
//
// Lint inline content:
//
//	POST /api/v1/lint
//	{"content": "function Get-Item {\n}\n", "filename": "deploy.ps1"}
//
// Lint workspace files:
//
//	POST /api/v1/lint
//	{"paths": ["deploy.ps1", "modules/helper.psm1"]}
//
// Inspect rules:
//
//	GET /api/v1/rules
//	GET /api/v1/rules/{name}
//
// # Usage Example
//
//	registry := rules.NewDefaultRegistry()
//	engine := linter.NewEngine(registry)
//	runner := linter.NewRunner(engine, linter.DefaultConfig())
//	server := api.NewServer(registry, runner, logger,
//		api.WithWorkspace("/srv/scripts"),
//		api.WithMetrics(metrics),
//	)
//	http.ListenAndServe(":8080", server.Handler())
//
// # Related Packages
//
//   - pkg/linter: The engine and runner behind the endpoints
//   - pkg/httputil: Response helpers and middleware
package api
