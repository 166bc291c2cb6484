package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kcal/internal/db"
	"github.com/terraincognita07/kcal/internal/i18n"
	"github.com/terraincognita07/kcal/internal/models"
	"github.com/terraincognita07/kcal/internal/nutrition"
	"github.com/terraincognita07/kcal/internal/services"
	"github.com/terraincognita07/kcal/internal/templates"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type identityProviderStub struct {
	profiles map[string]services.Profile
}

func (stub *identityProviderStub) AuthCodeURL(state string) string {
	return "https://accounts.example.test/auth?state=" + url.QueryEscape(state)
}

func (stub *identityProviderStub) Exchange(_ context.Context, code string) (services.Profile, error) {
	profile, ok := stub.profiles[code]
	if !ok {
		return services.Profile{}, services.ErrAuthenticationFailed
	}
	return profile, nil
}

type nutritionStub struct {
	mu      sync.Mutex
	facts   map[string]nutrition.Facts
	err     error
	queries []string
}

func (stub *nutritionStub) Lookup(_ context.Context, query string) (nutrition.Facts, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.queries = append(stub.queries, query)
	if stub.err != nil {
		return nutrition.Facts{}, stub.err
	}
	facts, ok := stub.facts[nutrition.NormalizeQuery(query)]
	if !ok {
		return nutrition.Facts{}, nutrition.ErrNoMatch
	}
	return facts, nil
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (clock *testClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *testClock) Set(value time.Time) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = value
}

type testEnv struct {
	app       *fiber.App
	users     *db.UserRepository
	nutrition *nutritionStub
	clock     *testClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithCookieSecure(t, false)
}

func newTestEnvWithCookieSecure(t *testing.T, cookieSecure bool) *testEnv {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "kcal-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en", i18n.Locales)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	users := db.NewUserRepository(database)
	foods := &nutritionStub{facts: map[string]nutrition.Facts{
		"2 eggs":    {Calories: 143.4, Protein: 12.6, Carbs: 0.7, Fat: 9.5, Fiber: 0, Items: 1},
		"big pizza": {Calories: 2400.2, Protein: 96.5, Carbs: 270.4, Fat: 98.6, Fiber: 12.2, Items: 1},
	}}
	clock := &testClock{now: time.Date(2026, time.March, 11, 9, 30, 0, 0, time.UTC)}

	handler, err := NewHandler(HandlerConfig{
		Users: users,
		Identity: &identityProviderStub{profiles: map[string]services.Profile{
			"jane-code": {ExternalID: "abc123", DisplayName: "Jane"},
			"bob-code":  {ExternalID: "xyz789", DisplayName: "Bob"},
		}},
		Nutrition:            foods,
		SecretKey:            testSecretKey,
		Location:             time.UTC,
		CookieSecure:         cookieSecure,
		DefaultCalorieTarget: 2500,
		I18n:                 i18nManager,
		Templates:            templates.Files,
		Now:                  clock.Now,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	return &testEnv{app: app, users: users, nutrition: foods, clock: clock}
}

// login runs the OAuth round trip for code and returns the session cookie.
func (env *testEnv) login(t *testing.T, code string) string {
	t.Helper()

	begin := env.do(t, http.MethodGet, "/auth/google", "", nil)
	if begin.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected /auth/google to redirect, got %d", begin.StatusCode)
	}
	stateCookie := responseCookie(begin.Cookies(), oauthStateCookieName)
	if stateCookie == nil {
		t.Fatal("expected oauth state cookie")
	}
	redirect, err := url.Parse(begin.Header.Get("Location"))
	if err != nil {
		t.Fatalf("parse provider redirect: %v", err)
	}
	state := redirect.Query().Get("state")

	callbackPath := "/auth/google/callback?code=" + url.QueryEscape(code) + "&state=" + url.QueryEscape(state)
	callback := env.do(t, http.MethodGet, callbackPath, oauthStateCookieName+"="+stateCookie.Value, nil)
	if callback.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected callback redirect, got %d", callback.StatusCode)
	}
	if location := callback.Header.Get("Location"); location != "/diary" {
		t.Fatalf("expected callback to redirect to /diary, got %q", location)
	}

	session := responseCookie(callback.Cookies(), authCookieName)
	if session == nil || session.Value == "" {
		t.Fatal("expected session cookie after callback")
	}
	return authCookieName + "=" + session.Value
}

func (env *testEnv) do(t *testing.T, method string, path string, cookie string, form url.Values) *http.Response {
	t.Helper()

	var request *http.Request
	if form != nil {
		request = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		request = httptest.NewRequest(method, path, nil)
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (env *testEnv) userByExternalID(t *testing.T, externalID string) models.User {
	t.Helper()
	user, found, err := env.users.FindByExternalID(context.Background(), externalID)
	if err != nil || !found {
		t.Fatalf("find user %s: found=%t err=%v", externalID, found, err)
	}
	return user
}

var errNutritionDown = errors.New("upstream timeout")
