package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/", handler.ShowEntry)
	app.Get("/auth/google", handler.BeginGoogleAuth)
	app.Get("/auth/google/callback", handler.GoogleCallback)
	app.Get("/logout", handler.AuthRequired, handler.Logout)

	app.Get("/diary", handler.AuthRequired, handler.ShowDiary)
	app.Get("/user", handler.AuthRequired, handler.ShowUser)
	app.Post("/targets", handler.AuthRequired, handler.UpdateTargets)
	app.Get("/add", handler.AuthRequired, handler.ShowAddFood)
	app.Post("/add", handler.AuthRequired, handler.AddFood)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
