package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/platinummonkey/pslint/pkg/api"
	"github.com/platinummonkey/pslint/pkg/config"
	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/linter/rules"
	"github.com/platinummonkey/pslint/pkg/observability"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		observability.NewLogger(observability.ErrorLevel, os.Stderr).
			WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	ctx := context.Background()

	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize OpenTelemetry")
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(promRegistry)
	}

	lintCfg, err := loadLintConfig(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to load lint configuration")
		os.Exit(1)
	}

	registry := rules.NewDefaultRegistry()
	engineOpts := []linter.Option{
		linter.WithConfig(lintCfg),
		linter.WithLogger(logger),
	}
	if metrics != nil {
		engineOpts = append(engineOpts, linter.WithMetrics(metrics))
	}
	engine := linter.NewEngine(registry, engineOpts...)

	runnerOpts := []linter.RunnerOption{
		linter.WithTreeCache(cfg.Lint.CacheSize, cfg.Lint.CacheTTL),
	}
	if cfg.Lint.Parallelism > 0 {
		runnerOpts = append(runnerOpts, linter.WithParallelism(cfg.Lint.Parallelism))
	}
	if metrics != nil {
		runnerOpts = append(runnerOpts, linter.WithRunnerMetrics(metrics))
	}
	runner := linter.NewRunner(engine, lintCfg, runnerOpts...)

	serverOpts := []api.ServerOption{
		api.WithWorkspace(cfg.Lint.Workspace),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	}
	if metrics != nil {
		serverOpts = append(serverOpts, api.WithMetrics(metrics))
	}
	apiServer := api.NewServer(registry, runner, logger, serverOpts...)

	// Health and metrics on a separate port for k8s probes
	healthChecker := observability.NewHealthChecker()
	healthChecker.AddCheck("workspace", observability.WorkspaceCheck(cfg.Lint.Workspace))
	healthMux := http.NewServeMux()
	observability.RegisterHealthRoutes(healthMux, healthChecker)
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(healthMux, promRegistry)
	}

	mainServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      apiServer.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	healthServer := &http.Server{
		Addr:    cfg.Server.HealthAddr(),
		Handler: healthMux,
	}

	go func() {
		defer observability.RecoverPanic(logger, "health server")
		logger.Infof("Health server listening on %s", healthServer.Addr)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Health server failed")
		}
	}()

	go func() {
		logger.Infof("Lint API server listening on %s", mainServer.Addr)
		if err := mainServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("API server failed")
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := mainServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("API server shutdown failed")
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Health server shutdown failed")
	}
	if err := observability.ShutdownOTel(shutdownCtx, providers, logger); err != nil {
		logger.WithError(err).Error("OpenTelemetry shutdown failed")
	}
}

func loadLintConfig(cfg *config.Config) (*linter.Config, error) {
	if cfg.Lint.ConfigPath != "" {
		return linter.LoadConfig(cfg.Lint.ConfigPath)
	}
	return linter.LoadConfigFromDir(cfg.Lint.Workspace)
}
