package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kcal/internal/models"
)

const (
	authCookieName       = "kcal_session"
	languageCookieName   = "kcal_lang"
	flashCookieName      = "kcal_flash"
	oauthStateCookieName = "kcal_oauth_state"
	contextUserKey       = "current_user"
	contextLanguageKey   = "current_language"
	contextMessagesKey   = "current_messages"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
