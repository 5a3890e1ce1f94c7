package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cleancli/internal/cleaning"
	"cleancli/internal/config"
	"cleancli/internal/exporter"
	"cleancli/internal/infrastructure"
	transport "cleancli/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logCfg := cfg.Logging
	if logCfg.Output != "console" {
		logCfg.FilePath = cfg.Paths.GetLogPath("web.log")
	}
	logger, err := infrastructure.InitializeLogger(logCfg)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer providers.Shutdown(context.Background())

	metrics, err := infrastructure.NewCleaningMetrics(providers.Meter)
	if err != nil {
		logger.Error("Failed to register metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := transport.NewRouter(transport.RouterDeps{
		Config:    cfg,
		Logger:    logger,
		Pipeline:  cleaning.NewPipeline(logger),
		Writer:    exporter.NewCSVWriter(&cfg.Paths),
		Metrics:   metrics,
		Providers: providers,
	})
	server := transport.NewServer(cfg, router)

	// Serve until interrupted, then drain within the shutdown timeout
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("Shutdown signal received", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Server stopped")
	}
}
