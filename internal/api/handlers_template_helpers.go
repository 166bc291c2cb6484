package api

import (
	"html/template"
	"strings"
	"time"
)

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t":             templateTranslate,
		"tf":            templateTranslatef,
		"formatDate":    formatTemplateDate,
		"isActiveRoute": isActiveTemplateRoute,
		"languageLabel": templateLanguageLabel,
	}
}

func templateTranslate(messages map[string]string, key string) string {
	return translateMessage(messages, key)
}

func templateTranslatef(messages map[string]string, key string, args ...any) string {
	return translateMessagef(messages, key, args...)
}

func formatTemplateDate(value time.Time, layout string) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(layout)
}

func templateLanguageLabel(messages map[string]string, language string) string {
	return translateMessage(messages, "lang."+strings.ToLower(strings.TrimSpace(language)))
}

func isActiveTemplateRoute(currentPath string, route string) bool {
	path := strings.TrimSpace(currentPath)
	if path == "" {
		return route == "/"
	}
	if route == "/" {
		return path == "/" || strings.HasPrefix(path, "/?")
	}
	return path == route || strings.HasPrefix(path, route+"?") || strings.HasPrefix(path, route+"/")
}
