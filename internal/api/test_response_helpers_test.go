package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(body)
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]any{}
	bytes, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(bytes, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	message, _ := payload["error"].(string)
	return message
}

func decodeFlashCookie(t *testing.T, response *http.Response) FlashPayload {
	t.Helper()

	cookie := responseCookie(response.Cookies(), flashCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected flash cookie")
	}
	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		t.Fatalf("decode flash payload: %v", err)
	}
	payload := FlashPayload{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		t.Fatalf("unmarshal flash payload: %v", err)
	}
	return payload
}

func flashCookieHeader(response *http.Response) string {
	cookie := responseCookie(response.Cookies(), flashCookieName)
	if cookie == nil {
		return ""
	}
	return flashCookieName + "=" + cookie.Value
}
