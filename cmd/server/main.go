package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"valo-editor/internal/api"
	"valo-editor/internal/config"
	"valo-editor/internal/logging"
	"valo-editor/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger, err := logging.Configure(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure logger")
	}

	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.TraceConfig{
		ServiceName:  "valo-editor",
		Exporter:     cfg.TraceExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to set up tracing")
	}

	limit, err := cfg.MaxBodyBytes()
	if err != nil {
		logger.WithError(err).Fatal("Invalid body size limit")
	}

	server := api.NewServer(api.Options{
		SaveDir:      cfg.SaveDir,
		MaxBodyBytes: int64(limit),
		AllowOrigins: cfg.AllowedOrigins(),
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.ServerAddr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server")
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("Server stopped")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.WithError(err).Error("Tracing shutdown failed")
	}
}
