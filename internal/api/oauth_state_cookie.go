package api

import (
	"crypto/subtle"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type oauthStatePayload struct {
	State     string `json:"state"`
	ExpiresAt int64  `json:"exp"`
}

// issueOAuthState stores a fresh state nonce in a sealed cookie and returns it.
func (handler *Handler) issueOAuthState(c *fiber.Ctx) (string, error) {
	state := uuid.NewString()
	now := handler.now()

	serialized, err := json.Marshal(oauthStatePayload{
		State:     state,
		ExpiresAt: now.Add(oauthStateTTL).Unix(),
	})
	if err != nil {
		return "", err
	}

	codec, err := newSecureCookieCodec(handler.secretKey)
	if err != nil {
		return "", err
	}
	encoded, err := codec.seal(oauthStateCookieName, serialized)
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    encoded,
		Path:     "/auth",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  now.Add(oauthStateTTL),
	})
	return state, nil
}

// consumeOAuthState clears the state cookie and reports whether it matches
// the state echoed back by the provider.
func (handler *Handler) consumeOAuthState(c *fiber.Ctx, echoed string) bool {
	raw := strings.TrimSpace(c.Cookies(oauthStateCookieName))
	handler.clearOAuthStateCookie(c)

	echoed = strings.TrimSpace(echoed)
	if raw == "" || echoed == "" {
		return false
	}

	codec, err := newSecureCookieCodec(handler.secretKey)
	if err != nil {
		return false
	}
	decoded, err := codec.open(oauthStateCookieName, raw)
	if err != nil {
		return false
	}

	payload := oauthStatePayload{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return false
	}
	if payload.State == "" || handler.now().Unix() > payload.ExpiresAt {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(payload.State), []byte(echoed)) == 1
}

func (handler *Handler) clearOAuthStateCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     "/auth",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
