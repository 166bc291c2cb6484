package api

import (
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/terraincognita07/kcal/internal/services"
)

var pageTemplates = []string{
	"enter",
	"diary",
	"user",
	"add",
	"not_found",
}

func NewHandler(config HandlerConfig) (*Handler, error) {
	if config.Users == nil {
		return nil, errors.New("user repository is required")
	}
	if config.Identity == nil {
		return nil, errors.New("identity provider is required")
	}
	if config.Nutrition == nil {
		return nil, errors.New("nutrition lookup is required")
	}
	if config.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if config.Templates == nil {
		return nil, errors.New("templates are required")
	}
	if len(config.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}

	location := config.Location
	if location == nil {
		location = time.Local
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	funcMap := newTemplateFuncMap()
	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, page := range pageTemplates {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(config.Templates, "base.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}

	return &Handler{
		secretKey:     []byte(config.SecretKey),
		location:      location,
		cookieSecure:  config.CookieSecure,
		i18n:          config.I18n,
		templates:     templates,
		identity:      config.Identity,
		authService:   services.NewAuthService(config.Users, config.DefaultCalorieTarget),
		diaryService:  services.NewDiaryService(config.Users, config.Nutrition, location),
		targetService: services.NewTargetService(config.Users),
		lookupLimiter: newAttemptLimiter(),
		now:           now,
	}, nil
}
