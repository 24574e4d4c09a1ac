package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/bikeshare-dashboard/internal/api/http"
	"github.com/i474232898/bikeshare-dashboard/internal/config"
	"github.com/i474232898/bikeshare-dashboard/internal/dashboard"
	"github.com/i474232898/bikeshare-dashboard/internal/observability"
	"github.com/i474232898/bikeshare-dashboard/internal/scheduler"
	"github.com/i474232898/bikeshare-dashboard/internal/store"
	"github.com/i474232898/bikeshare-dashboard/internal/trips"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics("bikeshare_dashboard", registry)

	// Tables memoized by path
	tables := store.NewTableStore(cfg.CacheSize, trips.ReadTable, metrics)
	service := trips.NewService(tables, cfg.DataPath)

	// Warm the cache; pages report a failed load and the next request retries.
	if table, err := service.Table(); err != nil {
		log.Printf("WARN: initial load of %s failed: %v", cfg.DataPath, err)
	} else {
		log.Printf("INFO: loaded %d trips from %s", table.Len(), cfg.DataPath)
	}

	sched := scheduler.New(cfg.DataPath, cfg.ReloadInterval, tables)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	pages, err := dashboard.New(service, dashboard.Options{
		TopN:                 cfg.TopN,
		HistogramBins:        cfg.HistogramBins,
		MapPath:              cfg.MapPath,
		AssetsDir:            cfg.AssetsDir,
		IntroImage:           cfg.IntroImage,
		RecommendationsImage: cfg.RecommendationsImage,
	}, metrics)
	if err != nil {
		log.Fatalf("failed to build dashboard: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "bikeshare-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if _, err := service.Table(); err != nil {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status":  status,
			"service": "bikeshare-dashboard",
			"data":    cfg.DataPath,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpapi.RegisterRoutes(app, service, httpapi.Options{
		DefaultTopN:   cfg.TopN,
		HistogramBins: cfg.HistogramBins,
		RateLimitMax:  cfg.RateLimitMax,
	})
	pages.Register(app)

	go func() {
		log.Printf("INFO: dashboard listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
