package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kcal/internal/services"
)

func (handler *Handler) AddFood(c *fiber.Ctx) error {
	user, handled, err := handler.currentUserOrRedirect(c)
	if handled || err != nil {
		return err
	}

	query := c.FormValue("food")
	if _, err := services.NormalizeFoodQuery(query); err != nil {
		return handler.flashErrorOrJSON(c, fiber.StatusBadRequest, "/add", services.ErrInvalidFoodQuery.Error(), FlashPayload{FoodQuery: query})
	}

	now := handler.now()
	if handler.lookupLimiter.tooManyRecent(user.ID, now, lookupLimit, lookupLimitWindow) {
		return handler.flashErrorOrJSON(c, fiber.StatusTooManyRequests, "/add", "too many lookups", FlashPayload{FoodQuery: query})
	}
	handler.lookupLimiter.record(user.ID, now, lookupLimitWindow)

	entry, err := handler.diaryService.LogFood(c.UserContext(), user.ID, query, now)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidFoodQuery):
			return handler.flashErrorOrJSON(c, fiber.StatusBadRequest, "/add", services.ErrInvalidFoodQuery.Error(), FlashPayload{FoodQuery: query})
		case errors.Is(err, services.ErrFoodNotRecognized):
			return handler.flashErrorOrJSON(c, fiber.StatusUnprocessableEntity, "/add", services.ErrFoodNotRecognized.Error(), FlashPayload{FoodQuery: query})
		case errors.Is(err, services.ErrNutritionUnavailable):
			return handler.flashErrorOrJSON(c, fiber.StatusServiceUnavailable, "/add", services.ErrNutritionUnavailable.Error(), FlashPayload{FoodQuery: query})
		case errors.Is(err, services.ErrUserNotFound):
			handler.clearAuthCookie(c)
			return c.Redirect("/", fiber.StatusSeeOther)
		default:
			return handler.internalError(c, "failed to log food", err)
		}
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true, "entry": entry})
	}
	handler.setFlashCookie(c, FlashPayload{Success: "success.food_added"})
	return c.Redirect("/diary", fiber.StatusSeeOther)
}
