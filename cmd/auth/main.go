package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"house-designer/internal/auth/handlers"
	"house-designer/internal/auth/repository"
	"house-designer/internal/auth/service"
	"house-designer/internal/common/config"
	"house-designer/internal/common/database"
	"house-designer/internal/common/logger"
	"house-designer/internal/common/middleware"
)

// ============================================================
// Auth Service
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "data/db/auth.db"
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log = log.With("service", "auth")

	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal("open db", "path", cfg.DBPath, "error", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatal("init db", "error", err)
	}

	sessions := service.NewSessionManager(cfg.SessionTTL)
	go sessions.Start()
	defer sessions.Stop()

	authHandler := handlers.NewAuthHandler(repo, sessions, log)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Auth Service",
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

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Auth Routes
	// ============================================================

	authHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting auth service", "addr", addr, "env", cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
