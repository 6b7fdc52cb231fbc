package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"lahu/internal/platform/config"
	"lahu/internal/platform/httpserver"
	"lahu/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lahu: %v\n", err)
		os.Exit(1)
	}
}

// run wires dependencies, serves HTTP and blocks until SIGINT/SIGTERM.
func run() error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.New(cfg.LogLevel)
	if cfg.UsingDefaultSigningKey() {
		log.Warn("using the development JWT signing key; set JWT_SIGNING_KEY in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer in.Close(log)

	var (
		registerer prometheus.Registerer
		gatherer   prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		registerer, gatherer = prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	}
	router, err := newRouter(ctx, cfg, in, log, registerer, gatherer)
	if err != nil {
		return err
	}
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting lahu", "addr", cfg.Addr,
			"postgres", in.db != nil,
			"redis", in.redis != nil,
			"kafka", in.kafka != nil,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
