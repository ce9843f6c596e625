package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-designer/internal/auth/repository"
	"house-designer/internal/auth/service"
	"house-designer/internal/common/database"
	"house-designer/internal/common/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background()))

	app := fiber.New()
	NewAuthHandler(repo, service.NewSessionManager(time.Hour), logger.Nop()).Register(app)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestRegisterLoginSession(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, http.MethodPost, "/register", "", map[string]any{
		"login": "anna", "password": "s3cret-pass", "name": "Anna K", "email": "anna@example.com", "role": "designer",
	})
	require.Equal(t, http.StatusCreated, status)
	user := body["user"].(map[string]any)
	userID := user["id"].(string)
	assert.Equal(t, "designer", user["role"])
	assert.NotContains(t, user, "PasswordHash")

	status, body = call(t, app, http.MethodPost, "/login", "", map[string]any{"login": "anna", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, status)
	token := body["token"].(string)

	status, body = call(t, app, http.MethodGet, "/internal/sessions/"+token, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, userID, body["id"])
	assert.Equal(t, "Anna K", body["name"])
	assert.Equal(t, "designer", body["role"])

	status, body = call(t, app, http.MethodGet, "/users/"+userID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anna@example.com", body["email"])

	status, _ = call(t, app, http.MethodGet, "/users/someone-else", token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, body = call(t, app, http.MethodGet, "/internal/sessions/"+token, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body["code"])
}

func TestRegisterRejects(t *testing.T) {
	app := newTestApp(t)

	valid := map[string]any{"login": "bob", "password": "s3cret-pass", "name": "Bob", "email": "bob@example.com"}
	status, body := call(t, app, http.MethodPost, "/register", "", valid)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "client", body["user"].(map[string]any)["role"])

	status, body = call(t, app, http.MethodPost, "/register", "", valid)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "login_taken", body["code"])

	status, body = call(t, app, http.MethodPost, "/register", "", map[string]any{
		"login": "eve", "password": "123", "name": "Eve", "email": "eve@example.com",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation_failed", body["code"])

	status, _ = call(t, app, http.MethodPost, "/register", "", map[string]any{
		"login": "eve", "password": "s3cret-pass", "name": "Eve", "email": "eve@example.com", "role": "admin",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)

	status, _ := call(t, app, http.MethodPost, "/register", "", map[string]any{
		"login": "carl", "password": "s3cret-pass", "name": "Carl", "email": "carl@example.com",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := call(t, app, http.MethodPost, "/login", "", map[string]any{"login": "carl", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", body["error"])

	status, _ = call(t, app, http.MethodPost, "/login", "", map[string]any{"login": "ghost", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
}
