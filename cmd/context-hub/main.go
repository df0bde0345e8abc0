package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/smartcity/context-hub/internal/api/http"
	"github.com/smartcity/context-hub/internal/cache"
	"github.com/smartcity/context-hub/internal/city"
	"github.com/smartcity/context-hub/internal/city/providers"
	"github.com/smartcity/context-hub/internal/config"
	"github.com/smartcity/context-hub/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Context providers, one per topic. Weather is the only real upstream;
	// temperature derives from it, traffic and shop offers are mock-backed.
	weather := providers.NewWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
	provs := []city.Provider{
		weather,
		providers.NewTemperatureProvider(weather),
		providers.NewTrafficProvider(),
		providers.NewShopOffersProvider(),
	}

	// Context cache with the standard 5-minute TTL.
	contextCache := cache.New(provs, cache.DefaultTTL)

	// Server facade owning the cache and the configured city.
	srv, err := city.NewServer(contextCache, cfg.DefaultCity, cfg.DefaultCountry)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	// Background cache warm-up for the configured city.
	refresher := scheduler.New(srv, cfg.RefreshInterval)
	if err := refresher.Start(); err != nil {
		log.Fatalf("failed to start refresher: %v", err)
	}
	defer refresher.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "context-hub",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "context-hub",
		})
	})

	httpapi.RegisterRoutes(app, srv)

	go func() {
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
