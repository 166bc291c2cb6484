package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var errorKeys = map[string]string{
	"invalid targets":               "error.invalid_targets",
	"invalid food query":            "error.invalid_food_query",
	"food not recognized":           "error.food_not_recognized",
	"nutrition service unavailable": "error.nutrition_unavailable",
	"too many lookups":              "error.too_many_lookups",
	"authentication failed":         "error.authentication_failed",
}

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func translateMessagef(messages map[string]string, key string, args ...any) string {
	format := translateMessage(messages, key)
	if format == key {
		return key
	}
	return fmt.Sprintf(format, args...)
}

func errorTranslationKey(message string) string {
	key, ok := errorKeys[strings.ToLower(strings.TrimSpace(message))]
	if !ok {
		return "error.generic"
	}
	return key
}

func weekdayTranslationKey(day time.Weekday) string {
	return "weekday." + strings.ToLower(day.String()[:3])
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}

func (handler *Handler) messagesFor(c *fiber.Ctx) map[string]string {
	messages := currentMessages(c)
	if len(messages) == 0 {
		return handler.i18n.Messages(handler.i18n.DefaultLanguage())
	}
	return messages
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	if _, ok := data["Messages"]; !ok {
		data["Messages"] = handler.messagesFor(c)
	}

	if _, ok := data["Lang"]; !ok {
		language := currentLanguage(c)
		if language == "" {
			language = handler.i18n.DefaultLanguage()
		}
		data["Lang"] = language
	}

	if _, ok := data["Languages"]; !ok {
		data["Languages"] = handler.i18n.SupportedLanguages()
	}

	if _, ok := data["CurrentPath"]; !ok {
		data["CurrentPath"] = currentPathWithQuery(c)
	}

	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}

	if _, ok := data["CurrentUser"]; !ok {
		if user, found := currentUser(c); found {
			data["CurrentUser"] = user
		}
	}

	return data
}

func currentPathWithQuery(c *fiber.Ctx) string {
	path := string(c.Request().URI().RequestURI())
	if path == "" {
		return c.Path()
	}
	return path
}
