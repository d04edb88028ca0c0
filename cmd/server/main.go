package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/erp/skucatalog/docs"
	catalogapp "github.com/erp/skucatalog/internal/application/catalog"
	"github.com/erp/skucatalog/internal/infrastructure/config"
	"github.com/erp/skucatalog/internal/infrastructure/event"
	"github.com/erp/skucatalog/internal/infrastructure/logger"
	"github.com/erp/skucatalog/internal/infrastructure/telemetry"
	"github.com/erp/skucatalog/internal/interfaces/http/handler"
	"github.com/erp/skucatalog/internal/interfaces/http/middleware"
	"github.com/erp/skucatalog/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			SKU Catalog API
//	@version		1.0
//	@description	In-memory inventory SKU catalog: branches, SKUs, code generation and barcode descriptors.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry providers share one config; each is inert when disabled
	telCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.ExportInterval,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}

	minLevel, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		baseLog.Fatal("Invalid log level", zap.Error(err))
	}
	log := loggerProvider.Bridge(baseLog, minLevel)
	defer func() {
		_ = logger.Sync(log)
	}()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.App.Name,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
		ProfileTypes:      cfg.Profiling.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Warn("Profiler stop failed", zap.Error(err))
		}
	}()
	if cfg.Telemetry.SpanProfiles && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting SKU catalog",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Catalog engine
	bus := event.NewSyncNotificationBus(logger.Component(log, "notifications"))
	facade := catalogapp.NewFacade(bus, logger.Component(log, "catalog"),
		catalogapp.WithCodeMaxAttempts(cfg.Catalog.CodeMaxAttempts),
		catalogapp.WithViewSync(cfg.Catalog.KeepViewInSync),
		catalogapp.WithPageSizes(cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize),
	)
	defer facade.Close()

	if cfg.Catalog.SeedDemoData {
		if err := facade.Seed(ctx, catalogapp.DemoSeed()); err != nil {
			log.Fatal("Failed to seed demo data", zap.Error(err))
		}
	}

	if meterProvider.IsEnabled() {
		catalogMetrics, err := telemetry.NewCatalogMetrics(telemetry.CatalogMetricsConfig{
			Meter:  meterProvider.Meter("sku.catalog"),
			Logger: log,
			Size: func() telemetry.CatalogSize {
				stats := facade.Stats()
				return telemetry.CatalogSize{
					Branches:   stats.TotalBranches,
					SKUs:       stats.TotalSKUs,
					ActiveSKUs: stats.ActiveSKUs,
				}
			},
		})
		if err != nil {
			log.Warn("Catalog metrics disabled", zap.Error(err))
		} else {
			facade.Subscribe(catalogMetrics)
		}
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. Tracing, metrics and profiling labels
	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSOrigins
	engine.Use(middleware.CORS(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodyBytes))

	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		Enabled:        tracerProvider.IsEnabled(),
		TracerProvider: tracerProvider.Provider(),
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       meterProvider.IsEnabled(),
		Logger:        log,
	}))

	profilingConfig := middleware.DefaultProfilingConfig()
	profilingConfig.Enabled = profiler.IsEnabled()
	engine.Use(middleware.Profiling(profilingConfig))

	if cfg.HTTP.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version)
	router.NewRouter(engine, router.WithHealth("/health", systemHandler.Health)).
		Register(handler.NewCatalogHandler(facade)).
		Setup()

	srv := &http.Server{
		Addr:           cfg.App.Addr(),
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"meter":  meterProvider.Shutdown,
		"tracer": tracerProvider.Shutdown,
		"logger": loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry provider shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
