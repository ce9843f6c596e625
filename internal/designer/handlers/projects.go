package handlers

import (
	"github.com/gofiber/fiber/v3"

	"house-designer/internal/designer/models"
)

// ============================================================
// Project Routes
// ============================================================

// CreateProject создаёт проект текущего пользователя.
func (h *DesignerHandler) CreateProject(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	var in models.ProjectInput
	if err := decodeBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	p, err := h.projects.Create(c.Context(), caller, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// ListProjects возвращает проекты текущего пользователя.
func (h *DesignerHandler) ListProjects(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	list, err := h.projects.List(c.Context(), caller)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(list)
}

func (h *DesignerHandler) GetProject(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	p, err := h.projects.Get(c.Context(), caller, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *DesignerHandler) UpdateProject(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	var in models.ProjectInput
	if err := decodeBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	p, err := h.projects.Update(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *DesignerHandler) DeleteProject(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.projects.Delete(c.Context(), caller, c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
