// Package main implements a simple HTTP server for managing products.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "net/http/pprof"

	"github.com/gocatalog/productsvc/internal/config"
	"github.com/gocatalog/productsvc/internal/product/app"
	"github.com/gocatalog/productsvc/pkg/bootstrap"
	"github.com/gocatalog/productsvc/pkg/config/configloader"
	"golang.org/x/sync/errgroup"
)

const serviceName = "product"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run initializes the application, sets up the database connection, and starts
// the HTTP and pprof servers plus the background task machinery.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
	if err != nil {
		return fmt.Errorf("failed to create database connection pool: %w", err)
	}
	defer dbPool.Close()
	logger.Info("Successfully connected to the database!")

	deps := app.SetupDependencies(dbPool, logger)
	httpServer := app.SetupHttpServer(deps, cfg)
	pprofServer := &http.Server{
		Addr: cfg.PProf.Addr,
	}
	pool := app.SetupWorkerPool(deps, cfg)

	g, gCtx := errgroup.WithContext(ctx)

	// Start the worker pool and, if enabled, the periodic trigger
	if err := pool.Start(); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}
	if cfg.Scheduler.Enabled {
		sched := app.SetupScheduler(deps, pool, cfg)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		// stop the trigger before the pool so no new work arrives during the drain
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down scheduler...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return sched.Stop(shutdownCtx)
		})
	}
	// drain the worker pool on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Draining worker pool...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return pool.Stop(shutdownCtx)
	})

	// Start the HTTP server
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}
