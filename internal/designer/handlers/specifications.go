package handlers

import (
	"github.com/gofiber/fiber/v3"

	"house-designer/internal/designer/models"
)

// ============================================================
// Specification Routes
// ============================================================

func (h *DesignerHandler) CreateSpecification(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	var in models.SpecificationInput
	if err := decodeBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	spec, err := h.specs.Create(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(spec.DTO())
}

func (h *DesignerHandler) ListSpecifications(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	list, err := h.specs.ListByProject(c.Context(), caller, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]models.HouseSpecificationDTO, 0, len(list))
	for i := range list {
		out = append(out, list[i].DTO())
	}
	return c.JSON(out)
}

func (h *DesignerHandler) GetSpecification(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	spec, err := h.specs.Get(c.Context(), caller, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(spec.DTO())
}

func (h *DesignerHandler) UpdateSpecification(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	var in models.SpecificationInput
	if err := decodeBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	spec, err := h.specs.Update(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(spec.DTO())
}

func (h *DesignerHandler) DeleteSpecification(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.specs.Delete(c.Context(), caller, c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPlan отдаёт SVG план этажа с дверями и окнами.
func (h *DesignerHandler) GetPlan(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	spec, err := h.specs.Get(c.Context(), caller, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	extras, err := h.extras.ListBySpecification(c.Context(), caller, spec.ID)
	if err != nil {
		return h.fail(c, err)
	}

	svg, err := h.renderer.Render(spec, extras)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}
