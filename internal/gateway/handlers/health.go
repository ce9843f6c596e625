package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"

	"house-designer/internal/common/logger"
)

// ============================================================
// Health Check Handlers
// ============================================================

type Health struct {
	upstreams map[string]string
	client    *http.Client
	log       *logger.Logger
}

// NewHealth принимает имя сервиса -> базовый URL.
func NewHealth(upstreams map[string]string, log *logger.Logger) *Health {
	return &Health{
		upstreams: upstreams,
		client:    &http.Client{Timeout: 2 * time.Second},
		log:       log.With("component", "Health"),
	}
}

// LivenessProbe проверяет, что приложение работает
func (h *Health) LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe опрашивает /health/ready всех upstream сервисов параллельно.
func (h *Health) ReadinessProbe(c fiber.Ctx) error {
	g, ctx := errgroup.WithContext(c.Context())
	for name, baseURL := range h.upstreams {
		g.Go(func() error {
			if err := h.check(ctx, baseURL); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		h.log.Warn("upstream not ready", "error", err)
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status": "ready",
	})
}

// StartupProbe проверяет, что приложение успешно запустилось
func (h *Health) StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}

func (h *Health) check(ctx context.Context, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/health/ready", nil)
	if err != nil {
		return err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
