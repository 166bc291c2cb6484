package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		if c.Cookies(authCookieName) != "" {
			handler.clearAuthCookie(c)
		}
		if acceptsJSON(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}
