package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"house-designer/internal/common/apierr"
	"house-designer/internal/common/logger"
	"house-designer/internal/designer/models"
)

// ============================================================
// Identity Resolver
// ============================================================

// IdentityResolver превращает bearer токен в пользователя.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (models.Identity, error)
}

// AuthClient спрашивает auth сервис о владельце токена и кэширует ответ.
type AuthClient struct {
	baseURL string
	client  *http.Client
	cache   *ttlcache.Cache[string, models.Identity]
	log     *logger.Logger
}

func NewAuthClient(baseURL string, cacheTTL time.Duration, log *logger.Logger) *AuthClient {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, models.Identity](cacheTTL),
		ttlcache.WithDisableTouchOnHit[string, models.Identity](),
	)
	return &AuthClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		cache:   cache,
		log:     log.With("component", "AuthClient"),
	}
}

// Start запускает очистку протухших записей кэша; блокирует до Stop.
func (a *AuthClient) Start() { a.cache.Start() }

func (a *AuthClient) Stop() { a.cache.Stop() }

func (a *AuthClient) Resolve(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, apierr.ErrUnauthorized
	}
	if item := a.cache.Get(token); item != nil {
		return item.Value(), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/internal/sessions/"+url.PathEscape(token), nil)
	if err != nil {
		return models.Identity{}, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return models.Identity{}, fmt.Errorf("reach auth service: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnauthorized:
		return models.Identity{}, apierr.ErrUnauthorized
	case resp.StatusCode >= 300:
		return models.Identity{}, fmt.Errorf("auth service status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Identity{}, err
	}
	var id models.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return models.Identity{}, fmt.Errorf("decode identity: %w", err)
	}
	if id.UserID == "" {
		return models.Identity{}, apierr.ErrUnauthorized
	}

	a.cache.Set(token, id, ttlcache.DefaultTTL)
	a.log.Debug("identity resolved", "userId", id.UserID)
	return id, nil
}
