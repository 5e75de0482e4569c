package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"advocatehub/internal/auth"
	"advocatehub/internal/config"
)

const defaultLanding = "/profile/posts"

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Next     string `json:"-" form:"next"`
}

// Login checks credentials and sets the session cookie.
// JSON callers get the user back; form posts are redirected to next.
//
// @Summary Sign in
// @Tags auth
// @Accept json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} model.User
// @Failure 401 {object} errorPayload
// @Router /auth/login [post]
func Login(a Authenticator, cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}

		token, user, err := a.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(cfg.TTL()),
			Secure:   cfg.CookieSecure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		if c.Is("json") {
			return c.JSON(user)
		}
		next := safeNext(req.Next)
		if next == "" {
			next = defaultLanding
		}
		return c.Redirect(next, fiber.StatusSeeOther)
	}
}

// Logout drops the current session and clears its cookie.
//
// @Summary Sign out
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func Logout(a Authenticator, cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cfg.CookieName)
		if token != "" {
			if err := a.Logout(c.UserContext(), token); err != nil && !errors.Is(err, auth.ErrSessionNotFound) {
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		c.ClearCookie(cfg.CookieName)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
