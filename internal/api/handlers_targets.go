package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kcal/internal/models"
	"github.com/terraincognita07/kcal/internal/services"
)

// UpdateTargets replaces all seven weekday targets from the sun..sat form
// fields. Invalid input leaves the stored targets untouched.
func (handler *Handler) UpdateTargets(c *fiber.Ctx) error {
	user, handled, err := handler.currentUserOrRedirect(c)
	if handled || err != nil {
		return err
	}

	var values [models.DaysPerWeek]string
	for index, key := range models.WeekdayKeys {
		values[index] = c.FormValue(key)
	}

	if _, err := handler.targetService.ReplaceTargets(c.UserContext(), user.ID, values); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTargets):
			return handler.flashErrorOrJSON(c, fiber.StatusBadRequest, "/user", services.ErrInvalidTargets.Error(), FlashPayload{})
		case errors.Is(err, services.ErrUserNotFound):
			handler.clearAuthCookie(c)
			return c.Redirect("/", fiber.StatusSeeOther)
		default:
			return handler.internalError(c, "failed to save targets", err)
		}
	}

	if !acceptsJSON(c) {
		handler.setFlashCookie(c, FlashPayload{Success: "success.targets_saved"})
	}
	return redirectOrJSON(c, "/diary")
}
