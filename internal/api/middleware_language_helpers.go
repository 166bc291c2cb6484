package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const languageCookieTTL = 365 * 24 * time.Hour

// LanguageMiddleware picks the request language from the kcal_lang cookie,
// then Accept-Language, and advertises it in Content-Language so JSON
// clients can see which catalog localized their messages.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language, fromCookie := handler.requestLanguage(c)
	if !fromCookie {
		handler.setLanguageCookie(c, language)
	}

	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	c.Set(fiber.HeaderContentLanguage, language)
	return c.Next()
}

// requestLanguage reports whether the stored cookie already holds the
// supported language so the middleware only rewrites stale cookies.
func (handler *Handler) requestLanguage(c *fiber.Ctx) (string, bool) {
	stored := c.Cookies(languageCookieName)
	if stored == "" {
		return handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage)), false
	}
	language := handler.i18n.NormalizeLanguage(stored)
	return language, language == stored
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().Add(languageCookieTTL),
	})
}
