package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-designer/internal/common/apierr"
	"house-designer/internal/common/logger"
	"house-designer/internal/designer/models"
	"house-designer/internal/designer/repository"
	"house-designer/internal/designer/service"
)

type staticResolver map[string]models.Identity

func (s staticResolver) Resolve(_ context.Context, token string) (models.Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return models.Identity{}, apierr.ErrUnauthorized
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repository.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.Nop()
	projectRepo := repository.NewProjectRepo(db)
	specs := service.NewSpecificationService(projectRepo, repository.NewSpecificationRepo(db), log)

	h := NewDesignerHandler(Deps{
		Projects:       service.NewProjectService(projectRepo, log),
		Specifications: specs,
		Extras:         service.NewExtrasService(specs, repository.NewExtrasRepo(db), log),
		Gallery:        service.NewGalleryService(projectRepo, repository.NewPublicProjectRepo(db), log),
		Identity: staticResolver{
			"owner-token": {UserID: "owner-1", Name: "Anna", Role: "designer"},
			"fan-token":   {UserID: "fan-1", Name: "Oleg", Role: "client"},
		},
		Log: log,
	})

	app := fiber.New()
	h.Register(app)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
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
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func TestDesignerFlow(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, http.MethodPost, "/projects", "owner-token", map[string]any{"title": "Barn"})
	require.Equal(t, http.StatusCreated, status, string(body))
	project := decode[models.Project](t, body)

	status, body = call(t, app, http.MethodPost, "/projects/"+project.ID+"/specifications", "owner-token", map[string]any{
		"shapeType":  "TShape",
		"mainLength": 6, "mainWidth": 4, "crossLength": 12, "crossWidth": 5,
		"roofType":  "Hip",
		"numFloors": 2,
		"floors":    []map[string]any{{"index": 0, "floorHeight": 3}, {"index": 1, "floorHeight": 2.7}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	spec := decode[models.HouseSpecificationDTO](t, body)
	assert.Equal(t, map[string]float64{"mainLength": 6, "mainWidth": 4, "crossLength": 12, "crossWidth": 5}, spec.ShapeParameters)
	assert.Equal(t, models.DefaultWallMaterial(), spec.WallMaterial)

	status, body = call(t, app, http.MethodPost, "/specifications/"+spec.ID+"/extras", "owner-token", map[string]any{
		"doors":   []map[string]any{{"wall": "wall-1", "position": 0.5}, {"wall": "wall-5", "position": 0.5}},
		"windows": []map[string]any{{"wall": "wall-2", "position": 0.1, "position2": 0.9}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	extras := decode[models.Extras](t, body)
	assert.Len(t, extras.Doors, 2)
	assert.NotEqual(t, spec.ID, extras.ID)

	status, body = call(t, app, http.MethodGet, "/specifications/"+spec.ID+"/plan.svg", "owner-token", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `class="window"`)

	status, _ = call(t, app, http.MethodGet, "/specifications/"+spec.ID, "fan-token", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = call(t, app, http.MethodPost, "/projects/"+project.ID+"/publish", "owner-token", map[string]any{"thumbnail": "thumbs/barn.png"})
	require.Equal(t, http.StatusCreated, status, string(body))
	pp := decode[models.PublicProject](t, body)

	status, body = call(t, app, http.MethodPost, "/projects/"+project.ID+"/publish", "owner-token", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "already_public")

	status, body = call(t, app, http.MethodPost, "/gallery/"+pp.ID+"/like", "fan-token", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.LikeResult{IsLiked: true, Likes: 1}, decode[models.LikeResult](t, body))

	status, body = call(t, app, http.MethodGet, "/gallery?sortBy=most_liked&userId=fan-1", "", nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[models.GalleryPage](t, body)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].IsLiked)
	assert.Equal(t, 12, page.PageSize)

	status, body = call(t, app, http.MethodGet, "/gallery/"+pp.ID, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[models.PublicProjectDTO](t, body).Views)

	status, _ = call(t, app, http.MethodPost, "/gallery/missing/view", "", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = call(t, app, http.MethodGet, "/projects/"+project.ID+"/public", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"isPublic":true}`, string(body))
}

func TestErrorsAreStructured(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, http.MethodGet, "/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), `"code":"unauthorized"`)

	status, _ = call(t, app, http.MethodPost, "/gallery/whatever/like", "stolen-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	_, body = call(t, app, http.MethodPost, "/projects", "owner-token", map[string]any{"title": "Hut"})
	project := decode[models.Project](t, body)

	status, body = call(t, app, http.MethodPost, "/projects/"+project.ID+"/specifications", "owner-token", map[string]any{"shapeType": "Hexagon"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "unsupported_shape_type")

	status, body = call(t, app, http.MethodPost, "/projects/"+project.ID+"/specifications", "owner-token", map[string]any{"shapeType": "Rectangular", "length": 4})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(body), "width")

	status, _ = call(t, app, http.MethodGet, "/gallery/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodPost, "/gallery/nope/like", "fan-token", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	app := fiber.New()
	app.Get("/ip", func(c fiber.Ctx) error {
		return c.SendString(clientIP(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", string(body))
}
