package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	language := handler.i18n.NormalizeLanguage(c.Params("lang"))
	handler.setLanguageCookie(c, language)
	return c.Redirect(sanitizeRedirectPath(c.Query("next"), "/"), fiber.StatusSeeOther)
}

// ShowEntry sends signed-in users to their diary and everyone else to the
// sign-in page.
func (handler *Handler) ShowEntry(c *fiber.Ctx) error {
	if _, err := handler.authenticateRequest(c); err == nil {
		return c.Redirect("/diary", fiber.StatusSeeOther)
	}

	messages := handler.messagesFor(c)
	flash := handler.popFlashCookie(c)
	return handler.render(c, "enter", fiber.Map{
		"Title":      localizedPageTitle(messages, "meta.title.entry", "kcal | Sign in"),
		"ErrorKey":   flash.Error,
		"SuccessKey": flash.Success,
	})
}
