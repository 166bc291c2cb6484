package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kcal/internal/models"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if acceptsJSON(c) {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	user := handler.optionalAuthenticatedUser(c)
	primaryPath := "/"
	primaryLabelKey := "not_found.action_home"
	if user != nil {
		c.Locals(contextUserKey, user)
		primaryPath = "/diary"
		primaryLabelKey = "not_found.action_diary"
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title":           localizedPageTitle(handler.messagesFor(c), "meta.title.not_found", "kcal | Page not found"),
		"PrimaryPath":     primaryPath,
		"PrimaryLabelKey": primaryLabelKey,
	})
}

func (handler *Handler) optionalAuthenticatedUser(c *fiber.Ctx) *models.User {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return nil
	}
	return user
}
