package api

import (
	"html/template"
	"io/fs"
	"time"

	"github.com/terraincognita07/kcal/internal/i18n"
	"github.com/terraincognita07/kcal/internal/identity"
	"github.com/terraincognita07/kcal/internal/nutrition"
	"github.com/terraincognita07/kcal/internal/services"
)

type Handler struct {
	secretKey     []byte
	location      *time.Location
	cookieSecure  bool
	i18n          *i18n.Manager
	templates     map[string]*template.Template
	identity      identity.Provider
	authService   *services.AuthService
	diaryService  *services.DiaryService
	targetService *services.TargetService
	lookupLimiter *attemptLimiter
	now           func() time.Time
}

// HandlerConfig wires the handler to its store, collaborators and assets.
type HandlerConfig struct {
	Users                services.UserRepository
	Identity             identity.Provider
	Nutrition            nutrition.Lookup
	SecretKey            string
	Location             *time.Location
	CookieSecure         bool
	DefaultCalorieTarget int
	I18n                 *i18n.Manager
	Templates            fs.FS
	Now                  func() time.Time
}

type FlashPayload struct {
	Error     string `json:"error,omitempty"`
	Success   string `json:"success,omitempty"`
	FoodQuery string `json:"food_query,omitempty"`
}

const (
	authTokenTTL      = 24 * time.Hour
	oauthStateTTL     = 10 * time.Minute
	lookupLimit       = 30
	lookupLimitWindow = time.Minute
)
