package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopline/internal/domain"
	applog "shopline/internal/log"
	"shopline/internal/repos"
	"shopline/internal/services"
	"shopline/internal/validate"
)

type UserHandler struct {
	Auth *services.AuthService
}

type credentialsReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userWithToken(u *domain.User, token string) fiber.Map {
	return fiber.Map{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"isAdmin": u.IsAdmin,
		"token":   token,
	}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req credentialsReq
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "name is required")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid email")
	}
	if !validate.Password(req.Password) {
		return jsonError(c, fiber.StatusBadRequest, "invalid password")
	}

	u, tok, err := h.Auth.Register(name, email, req.Password)
	if err != nil {
		if errors.Is(err, repos.ErrEmailTaken) {
			applog.Security(c, "user.register.conflict", map[string]any{"email": email})
			return jsonError(c, fiber.StatusConflict, "Email already exists")
		}
		return storeError(c, "user.register", err)
	}
	applog.Audit(c, "user.register", map[string]any{"user_id": u.ID})
	return c.JSON(userWithToken(u, tok))
}

func (h *UserHandler) SignIn(c *fiber.Ctx) error {
	var req credentialsReq
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	u, tok, err := h.Auth.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "user.signin.fail", map[string]any{"email": req.Email})
			return jsonError(c, fiber.StatusUnauthorized, "Invalid Email or Password.")
		}
		return storeError(c, "user.signin", err)
	}
	applog.Audit(c, "user.signin", map[string]any{"user_id": u.ID})
	return c.JSON(userWithToken(u, tok))
}

// Update applies a partial profile update and returns a fresh token.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "User Not Found")
	}
	var req credentialsReq
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	u, tok, err := h.Auth.UpdateProfile(id, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repos.ErrNotFound):
			return jsonError(c, fiber.StatusNotFound, "User Not Found")
		case errors.Is(err, repos.ErrEmailTaken):
			return jsonError(c, fiber.StatusConflict, "Email already exists")
		}
		return storeError(c, "user.update", err)
	}
	applog.Audit(c, "user.update", map[string]any{"user_id": u.ID})
	return c.JSON(userWithToken(u, tok))
}
