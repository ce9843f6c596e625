package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"house-designer/internal/common/config"
	"house-designer/internal/common/logger"
	"house-designer/internal/common/middleware"
	"house-designer/internal/designer/handlers"
	"house-designer/internal/designer/repository"
	"house-designer/internal/designer/service"
)

// ============================================================
// Designer Service
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if os.Getenv("PORT") == "" {
		cfg.Port = "3003"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "data/db/designer.db"
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log = log.With("service", "designer")

	db, err := repository.Open(context.Background(), cfg.DBPath)
	if err != nil {
		log.Fatal("open db", "path", cfg.DBPath, "error", err)
	}
	defer db.Close()

	projectRepo := repository.NewProjectRepo(db)
	specRepo := repository.NewSpecificationRepo(db)
	extrasRepo := repository.NewExtrasRepo(db)
	publicRepo := repository.NewPublicProjectRepo(db)

	specs := service.NewSpecificationService(projectRepo, specRepo, log)

	authClient := service.NewAuthClient(cfg.AuthURL, cfg.IdentityCacheTTL, log)
	go authClient.Start()
	defer authClient.Stop()

	designerHandler := handlers.NewDesignerHandler(handlers.Deps{
		Projects:       service.NewProjectService(projectRepo, log),
		Specifications: specs,
		Extras:         service.NewExtrasService(specs, extrasRepo, log),
		Gallery:        service.NewGalleryService(projectRepo, publicRepo, log),
		Identity:       authClient,
		Log:            log,
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Designer Service",
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
	// Designer Routes
	// ============================================================

	designerHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting designer service", "addr", addr, "env", cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
