package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "ecofinds/internal/log"
	"ecofinds/internal/services"
	"ecofinds/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "invalid body")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return respondErr(c, fiber.StatusBadRequest, "invalid email")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return respondErr(c, fiber.StatusBadRequest, "name must be 1-50 characters")
	}
	if !validate.Password(req.Password) {
		return respondErr(c, fiber.StatusBadRequest, "password must be 8-72 chars with upper, lower, digit and symbol")
	}

	u, err := h.Auth.Register(email, name, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return respondErr(c, fiber.StatusConflict, "email already registered")
		}
		applog.Error(c, "auth.register.fail", err, nil)
		return respondErr(c, fiber.StatusInternalServerError, "could not register")
	}
	applog.Audit(c, "auth.register", map[string]any{"user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, fiber.StatusBadRequest, "invalid body")
	}
	u, tok, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return respondErr(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	applog.Audit(c, "auth.login", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"token": tok, "user": u})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := currentClaims(c)
	u, err := h.Auth.Profile(claims.UserID)
	if err != nil {
		return respondErr(c, fiber.StatusNotFound, "user not found")
	}
	return c.JSON(u)
}
