package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cgsn-ops/ndbc-bulletin/internal/adapter/erddap"
	httpadapter "github.com/cgsn-ops/ndbc-bulletin/internal/adapter/http"
	"github.com/cgsn-ops/ndbc-bulletin/internal/adapter/logdir"
	"github.com/cgsn-ops/ndbc-bulletin/internal/adapter/transfer"
	"github.com/cgsn-ops/ndbc-bulletin/internal/config"
	"github.com/cgsn-ops/ndbc-bulletin/internal/observability"
	"github.com/cgsn-ops/ndbc-bulletin/internal/pipeline"
	"github.com/cgsn-ops/ndbc-bulletin/internal/station"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	stations, err := station.Select(cfg.Stations)
	if err != nil {
		logger.Error("failed to resolve stations", "error", err)
		os.Exit(1)
	}

	source := buildSource(cfg, logger)
	uploader, err := buildUploader(cfg, logger)
	if err != nil {
		logger.Error("failed to configure transfer", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(source, uploader, stations, logger, metrics, pipeline.Options{
		OutputDir:        cfg.OutputDir,
		Lookback:         cfg.Lookback,
		BinWidth:         cfg.BinWidth,
		RunInterval:      cfg.RunInterval,
		TransferProtocol: cfg.TransferProtocol,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the bulletin pipeline. With RUN_INTERVAL=0 it runs once and
	// returns; otherwise it loops until a signal arrives.
	var runErr error
	pipelineDone := make(chan struct{})
	go func() {
		defer close(pipelineDone)
		runErr = p.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case <-pipelineDone:
		stop()
	}
	<-pipelineDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	if runErr != nil {
		logger.Error("pipeline error", "error", runErr)
		os.Exit(1)
	}
}

// buildSource picks where observations come from: the raw log tree on the
// shore server mount, or the ERDDAP service.
func buildSource(cfg *config.Config, logger *slog.Logger) pipeline.Source {
	if cfg.Source == config.SourceErddap {
		logger.Info("reading observations from erddap", "url", cfg.ErddapURL)
		return erddap.NewClient(cfg.ErddapURL, cfg.ErddapTimeout, logger)
	}
	logger.Info("reading observations from log directories", "root", cfg.DataRoot)
	return logdir.New(cfg.DataRoot, cfg.MaxFiles, logger)
}

// buildUploader wires the configured transfer protocol, or nil when
// bulletins stay local.
func buildUploader(cfg *config.Config, logger *slog.Logger) (pipeline.Uploader, error) {
	if cfg.TransferProtocol == config.TransferNone {
		logger.Info("bulletin transfer disabled")
		return nil, nil
	}

	creds, err := transfer.LoadCredentials(cfg.TransferCredentials)
	if err != nil {
		return nil, err
	}

	switch cfg.TransferProtocol {
	case config.TransferFTP:
		up, err := transfer.NewFTP(creds, logger)
		if err != nil {
			return nil, err
		}
		return up, nil
	case config.TransferSFTP:
		up, err := transfer.NewSFTP(creds, logger)
		if err != nil {
			return nil, err
		}
		return up, nil
	default:
		return nil, fmt.Errorf("unknown transfer protocol %q", cfg.TransferProtocol)
	}
}
