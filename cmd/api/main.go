package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/PratikDhanave/tracking-service/internal/config"
	"github.com/PratikDhanave/tracking-service/internal/httpserver"
	"github.com/PratikDhanave/tracking-service/internal/logger"
	"github.com/PratikDhanave/tracking-service/internal/store"
)

// main boots the service: config → logger → store + schema → HTTP server.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Opening the store also creates the schema if absent.
	st, err := store.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to open event store", zap.Error(err))
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("error closing event store", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := httpserver.NewRouter(cfg, st, log, reg)

	if err := httpserver.Serve(ctx, cfg.HTTPAddr, router, cfg.ShutdownTimeout, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
