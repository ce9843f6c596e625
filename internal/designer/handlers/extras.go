package handlers

import (
	"github.com/gofiber/fiber/v3"

	"house-designer/internal/designer/models"
)

// ============================================================
// Extras Routes
// ============================================================

// AttachExtras прикрепляет двери и окна к спецификации.
func (h *DesignerHandler) AttachExtras(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	var in models.ExtrasInput
	if err := decodeBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	e, err := h.extras.Attach(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *DesignerHandler) ListExtras(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	list, err := h.extras.ListBySpecification(c.Context(), caller, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(list)
}

func (h *DesignerHandler) UpdateExtras(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	var in models.ExtrasInput
	if err := decodeBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	e, err := h.extras.Update(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(e)
}

func (h *DesignerHandler) DeleteExtras(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.extras.Delete(c.Context(), caller, c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
