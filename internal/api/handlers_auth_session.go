package api

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kcal/internal/services"
)

const identityExchangeTimeout = 15 * time.Second

func (handler *Handler) BeginGoogleAuth(c *fiber.Ctx) error {
	state, err := handler.issueOAuthState(c)
	if err != nil {
		return handler.internalError(c, "failed to start sign-in", err)
	}
	return c.Redirect(handler.identity.AuthCodeURL(state), fiber.StatusSeeOther)
}

// GoogleCallback finishes the provider flow. Every failure lands on the entry
// page without touching the store.
func (handler *Handler) GoogleCallback(c *fiber.Ctx) error {
	if !handler.consumeOAuthState(c, c.Query("state")) {
		return handler.failAuthentication(c, errors.New("oauth state mismatch"))
	}
	if providerError := strings.TrimSpace(c.Query("error")); providerError != "" {
		return handler.failAuthentication(c, errors.New("provider returned "+providerError))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), identityExchangeTimeout)
	defer cancel()

	profile, err := handler.identity.Exchange(ctx, c.Query("code"))
	if err != nil {
		return handler.failAuthentication(c, err)
	}

	user, created, err := handler.authService.FindOrCreateByExternalID(ctx, profile, handler.now())
	if err != nil {
		return handler.failAuthentication(c, err)
	}
	if created {
		log.Printf("created user %s for new identity", user.ID)
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return handler.failAuthentication(c, err)
	}
	return redirectOrJSON(c, "/diary")
}

func (handler *Handler) failAuthentication(c *fiber.Ctx, err error) error {
	log.Printf("authentication failed: %v", err)
	handler.clearAuthCookie(c)
	if acceptsJSON(c) {
		return apiError(c, fiber.StatusUnauthorized, services.ErrAuthenticationFailed.Error())
	}
	handler.setFlashCookie(c, FlashPayload{Error: errorTranslationKey(services.ErrAuthenticationFailed.Error())})
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	if user, ok := currentUser(c); ok {
		log.Printf("user %s signed out", user.ID)
	}
	handler.clearAuthCookie(c)
	handler.clearFlashCookie(c)
	return redirectOrJSON(c, "/")
}
