// Package app wires the productos service: store, service, HTTP and gRPC servers.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/andreastrap/productos/internal/config"
	"github.com/andreastrap/productos/internal/service"
	"github.com/andreastrap/productos/internal/store"
	grpcImpl "github.com/andreastrap/productos/internal/transport/grpc"
	"github.com/andreastrap/productos/internal/transport/rest"
	"github.com/andreastrap/productos/pkg/bootstrap"
	pkgconfig "github.com/andreastrap/productos/pkg/config"
	"github.com/andreastrap/productos/pkg/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
)

type Dependencies struct {
	ProductoService service.ProductoService
	Health          *grpcImpl.HealthServer
	Logger          *slog.Logger
	// MetricsHandler serves MetricsPath when set.
	MetricsHandler http.Handler
	MetricsPath    string
}

// SetupStore opens the database configured in cfg and returns the matching store and a close function.
func SetupStore(ctx context.Context, cfg pkgconfig.DatabaseConfig, logger *slog.Logger) (store.ProductoStore, func(), error) {
	switch cfg.Driver {
	case pkgconfig.DriverGorm:
		gdb, err := bootstrap.NewGormDB(ctx, cfg.URL, cfg.Timeout, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
		}
		closeFn := func() { _ = sqlDB.Close() }
		if cfg.AutoMigrate {
			if err := store.AutoMigrate(gdb); err != nil {
				closeFn()
				return nil, nil, err
			}
			logger.Info("Database schema migrated")
		}
		logger.Info("Successfully connected to the database!", "driver", cfg.Driver)
		return store.NewGormStore(gdb), closeFn, nil
	default:
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Successfully connected to the database!", "driver", cfg.Driver)
		return store.NewPgStore(dbPool), dbPool.Close, nil
	}
}

// SetupDependencies builds the service graph on top of the given store.
func SetupDependencies(st store.ProductoStore, logger *slog.Logger) *Dependencies {
	pService := service.NewService(st)
	probe := func(ctx context.Context) error {
		_, err := pService.Count(ctx)
		return err
	}

	return &Dependencies{
		ProductoService: pService,
		Health:          grpcImpl.NewHealthServer(probe),
		Logger:          logger,
	}
}

// SetupHttpHandler builds the router with middleware, routes and optional metrics endpoint, wrapped for tracing.
// Used by E2E tests to get the full HTTP stack without a listener.
func SetupHttpHandler(deps *Dependencies, corsCfg pkgconfig.CORSConfig) http.Handler {
	mux := server.NewChiRouter(deps.Logger, corsCfg)
	productoHandler := rest.NewHandler(deps.ProductoService, deps.Logger)
	productoHandler.RegisterRoutes(mux)
	if deps.MetricsHandler != nil {
		mux.Handle(deps.MetricsPath, deps.MetricsHandler)
	}
	return otelhttp.NewHandler(mux, "productos.http")
}

// SetupHttpServer creates and configures the HTTP server.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, SetupHttpHandler(deps, cfg.CORS))
}

// SetupGrpcServer creates the gRPC server exposing the health service.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(reflectionEnabled, deps.Health.Register)
}
