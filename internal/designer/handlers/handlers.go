package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"house-designer/internal/common/apierr"
	"house-designer/internal/common/logger"
	"house-designer/internal/designer/models"
	"house-designer/internal/designer/plan"
	"house-designer/internal/designer/service"
)

// ============================================================
// Designer Handler
// ============================================================

type DesignerHandler struct {
	projects *service.ProjectService
	specs    *service.SpecificationService
	extras   *service.ExtrasService
	gallery  *service.GalleryService
	identity service.IdentityResolver
	renderer *plan.Renderer
	log      *logger.Logger
}

type Deps struct {
	Projects       *service.ProjectService
	Specifications *service.SpecificationService
	Extras         *service.ExtrasService
	Gallery        *service.GalleryService
	Identity       service.IdentityResolver
	Log            *logger.Logger
}

func NewDesignerHandler(d Deps) *DesignerHandler {
	return &DesignerHandler{
		projects: d.Projects,
		specs:    d.Specifications,
		extras:   d.Extras,
		gallery:  d.Gallery,
		identity: d.Identity,
		renderer: plan.NewRenderer(),
		log:      d.Log.With("handler", "DesignerHandler"),
	}
}

// Register вешает маршруты designer сервиса на router.
func (h *DesignerHandler) Register(r fiber.Router) {
	r.Post("/projects", h.CreateProject)
	r.Get("/projects", h.ListProjects)
	r.Get("/projects/:id", h.GetProject)
	r.Put("/projects/:id", h.UpdateProject)
	r.Delete("/projects/:id", h.DeleteProject)

	r.Post("/projects/:id/specifications", h.CreateSpecification)
	r.Get("/projects/:id/specifications", h.ListSpecifications)
	r.Get("/specifications/:id", h.GetSpecification)
	r.Put("/specifications/:id", h.UpdateSpecification)
	r.Delete("/specifications/:id", h.DeleteSpecification)
	r.Get("/specifications/:id/plan.svg", h.GetPlan)

	r.Post("/specifications/:id/extras", h.AttachExtras)
	r.Get("/specifications/:id/extras", h.ListExtras)
	r.Put("/extras/:id", h.UpdateExtras)
	r.Delete("/extras/:id", h.DeleteExtras)

	r.Post("/projects/:id/publish", h.Publish)
	r.Get("/projects/:id/public", h.IsProjectPublic)
	r.Put("/public-projects/:id", h.UpdatePublic)
	r.Delete("/public-projects/:id", h.Unpublish)

	r.Get("/gallery", h.ListGallery)
	r.Get("/gallery/:id", h.GetGalleryItem)
	r.Post("/gallery/:id/like", h.ToggleLike)
	r.Post("/gallery/:id/view", h.RecordView)
}

// ============================================================
// Helpers
// ============================================================

// authorize требует валидный bearer токен.
func (h *DesignerHandler) authorize(c fiber.Ctx) (models.Identity, error) {
	token, ok := bearerToken(c)
	if !ok {
		return models.Identity{}, apierr.ErrUnauthorized
	}
	return h.identity.Resolve(c.Context(), token)
}

// optionalIdentity возвращает пустую Identity для анонимных запросов
// и для невалидных токенов.
func (h *DesignerHandler) optionalIdentity(c fiber.Ctx) models.Identity {
	token, ok := bearerToken(c)
	if !ok {
		return models.Identity{}
	}
	id, err := h.identity.Resolve(c.Context(), token)
	if err != nil {
		if !errors.Is(err, apierr.ErrUnauthorized) {
			h.log.Warn("identity lookup failed", "error", err)
		}
		return models.Identity{}
	}
	return id
}

func bearerToken(c fiber.Ctx) (string, bool) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}

func decodeBody(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return apierr.Validation("empty body")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return apierr.Validation("invalid json: %v", err)
	}
	return nil
}

func (h *DesignerHandler) fail(c fiber.Ctx, err error) error {
	return apierr.Respond(c, h.log, err)
}
