package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"house-designer/internal/designer/models"
	"house-designer/internal/designer/service"
)

// ============================================================
// Gallery Routes
// ============================================================

// Publish публикует проект в галерее.
func (h *DesignerHandler) Publish(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	var in models.PublishInput
	if len(c.Body()) > 0 {
		if err := decodeBody(c, &in); err != nil {
			return h.fail(c, err)
		}
	}
	pp, err := h.gallery.Publish(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pp)
}

func (h *DesignerHandler) IsProjectPublic(c fiber.Ctx) error {
	public, err := h.gallery.IsProjectPublic(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"isPublic": public})
}

func (h *DesignerHandler) UpdatePublic(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	var in models.PublishInput
	if err := decodeBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	pp, err := h.gallery.UpdatePublic(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(pp)
}

func (h *DesignerHandler) Unpublish(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.gallery.Unpublish(c.Context(), caller, c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListGallery: ?page=&pageSize=&sortBy=&userId=. Без userId берётся
// пользователь из токена, если он есть.
func (h *DesignerHandler) ListGallery(c fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		userID = h.optionalIdentity(c).UserID
	}

	page, err := h.gallery.List(c.Context(), service.GalleryQuery{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
		SortBy:   c.Query("sortBy"),
		UserID:   userID,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(page)
}

// GetGalleryItem отдаёт публичный проект и засчитывает просмотр.
func (h *DesignerHandler) GetGalleryItem(c fiber.Ctx) error {
	viewer := h.optionalIdentity(c)
	dto, err := h.gallery.Get(c.Context(), c.Params("id"), viewer, clientIP(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto)
}

func (h *DesignerHandler) ToggleLike(c fiber.Ctx) error {
	caller, err := h.authorize(c)
	if err != nil {
		return h.fail(c, err)
	}
	res, err := h.gallery.ToggleLike(c.Context(), c.Params("id"), caller)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

// RecordView отвечает 204 и для неизвестного проекта: просмотр — телеметрия.
func (h *DesignerHandler) RecordView(c fiber.Ctx) error {
	viewer := h.optionalIdentity(c)
	if _, err := h.gallery.RecordView(c.Context(), c.Params("id"), viewer.UserID, clientIP(c)); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// queryInt возвращает 0 для отсутствующих или нечисловых значений.
func queryInt(c fiber.Ctx, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// clientIP берёт первый адрес из X-Forwarded-For, который ставит gateway.
func clientIP(c fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return c.IP()
}
