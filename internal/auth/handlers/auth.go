package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v3"

	"house-designer/internal/auth/models"
	"house-designer/internal/auth/repository"
	"house-designer/internal/auth/service"
	"house-designer/internal/common/apierr"
	"house-designer/internal/common/logger"
)

// ============================================================
// Auth Handler
// ============================================================

const minPasswordLen = 6

type AuthHandler struct {
	repo     *repository.Repository
	sessions *service.SessionManager
	log      *logger.Logger
}

func NewAuthHandler(repo *repository.Repository, sessions *service.SessionManager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		repo:     repo,
		sessions: sessions,
		log:      log.With("handler", "AuthHandler"),
	}
}

// Register вешает маршруты auth сервиса на router.
func (h *AuthHandler) Register(r fiber.Router) {
	r.Post("/register", h.SignUp)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/users/:id", h.GetUser)

	// Internal routes (для межсервисного общения)
	r.Get("/internal/sessions/:token", h.GetSession)
}

type registerRequest struct {
	Login    string      `json:"login"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type sessionPayload struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// SignUp регистрирует пользователя и сразу выдаёт токен.
func (h *AuthHandler) SignUp(c fiber.Ctx) error {
	var req registerRequest
	if err := decodeBody(c, &req); err != nil {
		return h.fail(c, err)
	}
	if err := req.validate(); err != nil {
		return h.fail(c, err)
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	user := &models.User{
		Login:        req.Login,
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
	}
	if err := h.repo.Create(c.Context(), user); err != nil {
		return h.fail(c, err)
	}

	h.log.Info("user registered", "userId", user.ID, "role", user.Role)
	return c.Status(http.StatusCreated).JSON(loginResponse{
		Token: h.sessions.Issue(user.ID),
		User:  user,
	})
}

// Login выдает токен по паре login/password.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := decodeBody(c, &req); err != nil {
		return h.fail(c, err)
	}
	if req.Login == "" || req.Password == "" {
		return h.fail(c, apierr.Validation("login and password required"))
	}

	user, err := h.repo.GetByLogin(c.Context(), req.Login)
	if err != nil {
		if errors.Is(err, apierr.ErrNotFound) {
			return h.fail(c, invalidCredentials)
		}
		return h.fail(c, err)
	}
	if !service.CheckPassword(user.PasswordHash, req.Password) {
		h.log.Warn("login rejected", "login", req.Login)
		return h.fail(c, invalidCredentials)
	}

	return c.JSON(loginResponse{
		Token: h.sessions.Issue(user.ID),
		User:  user,
	})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return h.fail(c, apierr.ErrUnauthorized)
	}
	h.sessions.Revoke(token)
	return c.SendStatus(http.StatusNoContent)
}

// GetUser возвращает данные пользователя. Смотреть можно только себя.
func (h *AuthHandler) GetUser(c fiber.Ctx) error {
	userID, ok := h.sessions.Resolve(bearerToken(c))
	if !ok {
		return h.fail(c, apierr.ErrUnauthorized)
	}
	if c.Params("id") != userID {
		return h.fail(c, apierr.ErrPermissionDenied)
	}

	user, err := h.repo.GetByID(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(user)
}

// GetSession отдаёт владельца токена другим сервисам.
func (h *AuthHandler) GetSession(c fiber.Ctx) error {
	userID, ok := h.sessions.Resolve(c.Params("token"))
	if !ok {
		return h.fail(c, apierr.NotFound("session"))
	}
	user, err := h.repo.GetByID(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sessionPayload{ID: user.ID, Name: user.Name, Role: user.Role})
}

// ============================================================
// Helpers
// ============================================================

var invalidCredentials = apierr.New(http.StatusUnauthorized, apierr.ErrUnauthorized.Code, errors.New("invalid credentials"))

func (r *registerRequest) validate() error {
	r.Login = strings.TrimSpace(r.Login)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Role == "" {
		r.Role = models.RoleClient
	}

	switch {
	case r.Login == "":
		return apierr.Validation("login is required")
	case len(r.Password) < minPasswordLen:
		return apierr.Validation("password must be at least %d characters", minPasswordLen)
	case r.Name == "":
		return apierr.Validation("name is required")
	case !r.Role.Valid():
		return apierr.Validation("unknown role %q", r.Role)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return apierr.Validation("invalid email %q", r.Email)
	}
	return nil
}

func decodeBody(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return apierr.Validation("empty body")
	}
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		return apierr.Validation("invalid json: %v", err)
	}
	return nil
}

func bearerToken(c fiber.Ctx) string {
	header := c.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func (h *AuthHandler) fail(c fiber.Ctx, err error) error {
	return apierr.Respond(c, h.log, err)
}
