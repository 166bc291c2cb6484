package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/kcal/internal/api"
	"github.com/terraincognita07/kcal/internal/cli"
	"github.com/terraincognita07/kcal/internal/config"
	"github.com/terraincognita07/kcal/internal/db"
	"github.com/terraincognita07/kcal/internal/i18n"
	"github.com/terraincognita07/kcal/internal/identity"
	"github.com/terraincognita07/kcal/internal/nutrition"
	"github.com/terraincognita07/kcal/internal/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}
	time.Local = cfg.Location

	if len(os.Args) > 1 && os.Args[1] == "reset-targets" {
		if err := runResetTargets(cfg, os.Args[2:]); err != nil {
			log.Fatalf("reset-targets failed: %v", err)
		}
		return
	}

	if err := runServer(cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func runServer(cfg *config.Config) error {
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	repositories, err := db.Open(startupCtx, cfg.Store)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer closeRepositories(repositories)

	foods := newNutritionLookup(startupCtx, cfg)

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, i18n.Locales)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(api.HandlerConfig{
		Users:                repositories.Users,
		Identity:             identity.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL),
		Nutrition:            foods,
		SecretKey:            cfg.SecretKey,
		Location:             cfg.Location,
		CookieSecure:         cfg.CookieSecure,
		DefaultCalorieTarget: cfg.DefaultCalorieTarget,
		I18n:                 i18nManager,
		Templates:            templates.Files,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "kcal",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	app.Static("/static", filepath.Join("web", "static"))
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("kcal listening on http://0.0.0.0:%s (store: %s, tz: %s)", cfg.Port, cfg.Store.Driver, cfg.Location.String())
	return app.Listen(":" + cfg.Port)
}

// newNutritionLookup wraps the API client in the Redis cache when one is
// configured and reachable.
func newNutritionLookup(ctx context.Context, cfg *config.Config) nutrition.Lookup {
	client := nutrition.NewClient(cfg.NutritionAPIURL, cfg.NutritionAPIKey)
	if cfg.RedisAddr == "" {
		return client
	}

	redisClient, err := nutrition.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Printf("nutrition cache disabled: %v", err)
		return client
	}
	return nutrition.NewCachedLookup(client, nutrition.NewRedisCache(redisClient), nutrition.DefaultCacheTTL)
}

func runResetTargets(cfg *config.Config, args []string) error {
	externalID, calories, err := cli.ParseResetTargetsArgs(args, cfg.DefaultCalorieTarget)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repositories, err := db.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer closeRepositories(repositories)

	return cli.RunResetTargetsCommand(ctx, repositories.Users, externalID, calories, os.Stdout)
}

func closeRepositories(repositories *db.Repositories) {
	if err := repositories.Close(context.Background()); err != nil {
		log.Printf("database close failed: %v", err)
	}
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "kcal_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}
