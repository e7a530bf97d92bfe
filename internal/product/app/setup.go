// Package app contains the application setup for the product service.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gocatalog/productsvc/internal/config"
	"github.com/gocatalog/productsvc/internal/product/service"
	"github.com/gocatalog/productsvc/internal/product/store"
	"github.com/gocatalog/productsvc/internal/product/transport/rest"
	"github.com/gocatalog/productsvc/internal/scheduler"
	"github.com/gocatalog/productsvc/internal/worker"
	"github.com/gocatalog/productsvc/pkg/server"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	pService := service.NewService(store.NewPgStore(dbPool))

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the product service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the product service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the product service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// SetupWorkerPool creates the bounded pool for background tasks.
func SetupWorkerPool(deps *Dependencies, cfg *config.Config) *worker.Pool {
	return worker.NewPool(worker.Config{
		CoreSize:      cfg.Worker.CoreSize,
		MaxSize:       cfg.Worker.MaxSize,
		QueueCapacity: cfg.Worker.QueueCapacity,
		NamePrefix:    cfg.Worker.NamePrefix,
	}, deps.Logger)
}

// SetupScheduler creates the periodic trigger with the catalog stats job.
func SetupScheduler(deps *Dependencies, pool *worker.Pool, cfg *config.Config) *scheduler.Scheduler {
	job := catalogStatsJob(deps.ProductService, deps.Logger)
	return scheduler.New(cfg.Scheduler.Interval, pool, job, deps.Logger)
}

// catalogStatsJob returns a job that logs the current catalog size.
func catalogStatsJob(pService service.ProductService, logger *slog.Logger) scheduler.Job {
	statsLogger := logger.With("component", "catalog_stats")
	return func(ctx context.Context) error {
		count, err := pService.Count(ctx)
		if err != nil {
			return err
		}
		statsLogger.InfoContext(ctx, "Catalog snapshot", "products", count)
		return nil
	}
}
