package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"house-designer/internal/common/logger"
)

// ============================================================
// Proxy Handler
// ============================================================

// Заголовки, которые не пересылаются между соединениями.
var hopHeaders = map[string]struct{}{
	"Connection":        {},
	"Keep-Alive":        {},
	"Transfer-Encoding": {},
	"Upgrade":           {},
	"Content-Length":    {},
}

type Proxy struct {
	prefix string
	client *http.Client
	log    *logger.Logger
}

// New создаёт прокси; prefix срезается с пути перед отправкой в upstream.
func New(prefix string, timeout time.Duration, log *logger.Logger) *Proxy {
	return &Proxy{
		prefix: prefix,
		client: &http.Client{Timeout: timeout},
		log:    log.With("component", "Proxy"),
	}
}

// To проксирует запрос в сервис baseURL, сохраняя путь и query.
func (p *Proxy) To(baseURL string) fiber.Handler {
	baseURL = strings.TrimRight(baseURL, "/")
	return func(c fiber.Ctx) error {
		target := baseURL + strings.TrimPrefix(c.Path(), p.prefix)
		if query := c.Request().URI().QueryString(); len(query) > 0 {
			target += "?" + string(query)
		}
		return p.forward(c, target)
	}
}

func (p *Proxy) forward(c fiber.Ctx, targetURL string) error {
	p.log.Debug("forwarding", "method", c.Method(), "path", c.Path(), "target", targetURL)

	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		p.log.Error("build request", "target", targetURL, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed", "code": "internal"})
	}

	if contentType := c.Get("Content-Type"); contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth := c.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	forwarded := c.IP()
	if prior := c.Get("X-Forwarded-For"); prior != "" {
		forwarded = prior + ", " + forwarded
	}
	req.Header.Set("X-Forwarded-For", forwarded)

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Warn("upstream unreachable", "target", targetURL, "error", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service", "code": "bad_gateway"})
	}
	defer resp.Body.Close()

	return p.copyResponse(c, resp)
}

func (p *Proxy) copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		p.log.Warn("read upstream response", "error", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response", "code": "bad_gateway"})
	}

	for key, values := range resp.Header {
		if _, hop := hopHeaders[key]; hop || len(values) == 0 {
			continue
		}
		c.Set(key, values[0])
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}
