package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"house-designer/internal/common/logger"
)

// ============================================================
// API Errors
// ============================================================

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// Is сравнивает ошибки по коду, чтобы errors.Is работал с обёрнутыми sentinel-ами.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Code != "" && e.Code == t.Code
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

var (
	ErrNotFound             = New(http.StatusNotFound, "not_found", errors.New("not found"))
	ErrUnsupportedShapeType = New(http.StatusBadRequest, "unsupported_shape_type", errors.New("unsupported shape type"))
	ErrValidation           = New(http.StatusUnprocessableEntity, "validation_failed", errors.New("validation failed"))
	ErrAlreadyPublic        = New(http.StatusConflict, "already_public", errors.New("project is already public"))
	ErrPermissionDenied     = New(http.StatusForbidden, "permission_denied", errors.New("permission denied"))
	ErrUnauthorized         = New(http.StatusUnauthorized, "unauthorized", errors.New("unauthorized"))
)

// NotFound возвращает ErrNotFound с именем сущности в сообщении.
func NotFound(entity string) *Error {
	return New(http.StatusNotFound, ErrNotFound.Code, fmt.Errorf("%s not found", entity))
}

// Validation возвращает ошибку валидации с человекочитаемым сообщением.
func Validation(format string, args ...any) *Error {
	return New(http.StatusUnprocessableEntity, ErrValidation.Code, fmt.Errorf(format, args...))
}

func UnsupportedShapeType(shape string) *Error {
	return New(http.StatusBadRequest, ErrUnsupportedShapeType.Code, fmt.Errorf("unsupported shape type %q", shape))
}

// ============================================================
// Fiber integration
// ============================================================

// Respond пишет ошибку в ответ в формате {"error": ..., "code": ...}.
func Respond(c fiber.Ctx, log *logger.Logger, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return c.Status(apiErr.Status).JSON(fiber.Map{
			"error": apiErr.Error(),
			"code":  apiErr.Code,
		})
	}

	if log != nil {
		log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
		"code":  "internal",
	})
}
