package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func redirectOrJSON(c *fiber.Ctx, path string) error {
	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// flashErrorOrJSON redirects browsers back to path with a localized flash
// error and answers JSON clients with the raw message.
func (handler *Handler) flashErrorOrJSON(c *fiber.Ctx, status int, path string, message string, flash FlashPayload) error {
	if acceptsJSON(c) {
		return apiError(c, status, message)
	}
	flash.Error = errorTranslationKey(message)
	handler.setFlashCookie(c, flash)
	return c.Redirect(path, fiber.StatusSeeOther)
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

func localizedPageTitle(messages map[string]string, key string, fallback string) string {
	title := translateMessage(messages, key)
	if title == key || strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}

func sanitizeRedirectPath(raw string, fallback string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, "/\\") || !strings.HasPrefix(candidate, "/") {
		return fallback
	}
	return candidate
}
