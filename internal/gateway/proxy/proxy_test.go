package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-designer/internal/common/logger"
)

func TestProxyForwardsPathQueryAndHeaders(t *testing.T) {
	var seen *http.Request
	var seenBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		data, _ := io.ReadAll(r.Body)
		seenBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Upstream", "designer")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer upstream.Close()

	p := New("/api/v1", time.Second, logger.Nop())
	app := fiber.New()
	app.All("/api/v1/gallery", p.To(upstream.URL))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gallery?sortBy=popular&page=2", strings.NewReader(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "designer", resp.Header.Get("X-Upstream"))

	require.NotNil(t, seen)
	assert.Equal(t, "/gallery", seen.URL.Path)
	assert.Equal(t, "popular", seen.URL.Query().Get("sortBy"))
	assert.Equal(t, "2", seen.URL.Query().Get("page"))
	assert.Equal(t, "Bearer tok", seen.Header.Get("Authorization"))
	assert.NotEmpty(t, seen.Header.Get("X-Forwarded-For"))
	assert.Equal(t, `{"a":1}`, seenBody)
}

func TestProxyUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := upstream.URL
	upstream.Close()

	p := New("/api/v1", time.Second, logger.Nop())
	app := fiber.New()
	app.Get("/api/v1/projects", p.To(url))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
