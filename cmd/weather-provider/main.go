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
	"go.uber.org/zap"

	httpapi "github.com/halcyonos/weather-provider/internal/api/http"
	"github.com/halcyonos/weather-provider/internal/config"
	"github.com/halcyonos/weather-provider/internal/scheduler"
	"github.com/halcyonos/weather-provider/internal/store"
	"github.com/halcyonos/weather-provider/internal/weather"
	"github.com/halcyonos/weather-provider/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	prefs := store.NewPrefsStore(cfg.OpenWeatherAPIKey, cfg.Metric)
	provider := providers.NewOpenWeatherProvider(httpClient, cfg.BaseURL)
	gate := weather.NewRequestGate(weather.DefaultRequestThreshold)

	service := weather.NewService(provider, prefs, gate, cfg.LanguageCode, sugar,
		weather.WithUpdateHook(func(s *weather.WeatherSnapshot) {
			sugar.Infow("weather snapshot updated",
				"city", s.City,
				"condition", s.Condition,
				"temperature", s.Temperature,
				"forecastDays", len(s.Forecast),
			)
		}),
	)

	sched := scheduler.New(service, cfg.RefreshInterval, cfg.HTTPTimeout*2, sugar)
	if err := sched.Start(); err != nil {
		sugar.Fatalw("failed to start refresh scheduler", "error", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-provider",
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
			"service": "weather-provider",
		})
	})

	httpapi.RegisterRoutes(app, service, prefs)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			sugar.Errorw("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		sugar.Errorw("error during shutdown", "error", err)
	}
}
