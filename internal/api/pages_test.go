package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newJSONRequest(method string, path string, cookie string, form url.Values) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	request := httptest.NewRequest(method, path, body)
	if form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	request.Header.Set("Accept", "application/json")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return request
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	response := env.do(t, http.MethodGet, "/healthz", "", nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if body := readBody(t, response); !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("unexpected health body %s", body)
	}
}

func TestNotFoundPage(t *testing.T) {
	env := newTestEnv(t)

	response := env.do(t, http.MethodGet, "/missing", "", nil)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
	body := readBody(t, response)
	if !strings.Contains(body, "Page not found") || !strings.Contains(body, `href="/"`) {
		t.Fatalf("expected anonymous not-found page, got %s", body)
	}

	session := env.login(t, "jane-code")
	signedIn := env.do(t, http.MethodGet, "/missing", session, nil)
	if body := readBody(t, signedIn); !strings.Contains(body, "Back to diary") {
		t.Fatalf("expected diary link for signed-in user, got %s", body)
	}
}

func TestLanguageSwitchLocalizesDiary(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "jane-code")

	response := env.do(t, http.MethodGet, "/lang/ru?next=/diary", session, nil)
	if response.StatusCode != http.StatusSeeOther || response.Header.Get("Location") != "/diary" {
		t.Fatalf("expected redirect to /diary, got %d %q", response.StatusCode, response.Header.Get("Location"))
	}
	language := responseCookie(response.Cookies(), languageCookieName)
	if language == nil || language.Value != "ru" {
		t.Fatalf("expected ru language cookie, got %+v", language)
	}

	diary := env.do(t, http.MethodGet, "/diary", session+"; "+languageCookieName+"=ru", nil)
	body := readBody(t, diary)
	if !strings.Contains(body, "Осталось 2500 ккал на сегодня") {
		t.Fatalf("expected russian calorie message, got %s", body)
	}
	if !strings.Contains(body, `lang="ru"`) {
		t.Fatalf("expected ru document language, got %s", body)
	}
}

func TestLanguageSwitchRejectsExternalRedirect(t *testing.T) {
	env := newTestEnv(t)

	response := env.do(t, http.MethodGet, "/lang/en?next=//evil.example", "", nil)
	if location := response.Header.Get("Location"); location != "/" {
		t.Fatalf("expected fallback redirect, got %q", location)
	}
}

func TestLanguageMiddlewareAdvertisesContentLanguage(t *testing.T) {
	env := newTestEnv(t)

	request := newJSONRequest(http.MethodGet, "/healthz", "", nil)
	request.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.8")
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer response.Body.Close()

	if got := response.Header.Get("Content-Language"); got != "ru" {
		t.Fatalf("expected Content-Language ru, got %q", got)
	}
	if language := responseCookie(response.Cookies(), languageCookieName); language == nil || language.Value != "ru" {
		t.Fatalf("expected detected language to be stored, got %+v", language)
	}

	stored := env.do(t, http.MethodGet, "/healthz", languageCookieName+"=en", nil)
	if got := stored.Header.Get("Content-Language"); got != "en" {
		t.Fatalf("expected cookie language to win, got %q", got)
	}
	if language := responseCookie(stored.Cookies(), languageCookieName); language != nil {
		t.Fatalf("expected current language cookie to be left alone, got %+v", language)
	}

	stale := env.do(t, http.MethodGet, "/healthz", languageCookieName+"=de", nil)
	if language := responseCookie(stale.Cookies(), languageCookieName); language == nil || language.Value != "en" {
		t.Fatalf("expected unsupported cookie to be rewritten to en, got %+v", language)
	}
}
