package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"house-designer/internal/common/config"
	"house-designer/internal/common/logger"
	"house-designer/internal/common/middleware"
	"house-designer/internal/gateway/handlers"
	"house-designer/internal/gateway/proxy"
)

// ============================================================
// API Gateway
// ============================================================

const apiPrefix = "/api/v1"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log = log.With("service", "gateway")

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger(log))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	health := handlers.NewHealth(map[string]string{
		"auth":     cfg.AuthURL,
		"designer": cfg.DesignerURL,
	}, log)

	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe)
	app.Get("/health/startup", health.StartupProbe)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group(apiPrefix)

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "House Designer API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	p := proxy.New(apiPrefix, time.Duration(cfg.WriteTimeout)*time.Second, log)

	// Auth Service
	toAuth := p.To(cfg.AuthURL)
	api.Post("/register", toAuth)
	api.Post("/login", toAuth)
	api.Post("/logout", toAuth)
	api.Get("/users/:id", toAuth)

	// Designer Service
	toDesigner := p.To(cfg.DesignerURL)
	for _, prefix := range []string{"/projects", "/specifications", "/extras", "/public-projects", "/gallery"} {
		api.All(prefix, toDesigner)
		api.All(prefix+"/*", toDesigner)
	}

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting api gateway", "addr", addr, "env", cfg.Environment, "auth", cfg.AuthURL, "designer", cfg.DesignerURL)

	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
