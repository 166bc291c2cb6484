package api

import (
	"bytes"
	"log"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}
	payload := handler.withTemplateDefaults(c, data)
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", payload); err != nil {
		log.Printf("render %s failed: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func (handler *Handler) internalError(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s %s: %s: %v", c.Method(), c.Path(), message, err)
	if acceptsJSON(c) {
		return apiError(c, fiber.StatusInternalServerError, message)
	}
	return c.Status(fiber.StatusInternalServerError).SendString(message)
}
