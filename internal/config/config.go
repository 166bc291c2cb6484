package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/kcal/internal/db"
	"github.com/terraincognita07/kcal/internal/models"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

type Config struct {
	Port                 string
	Location             *time.Location
	SecretKey            string
	CookieSecure         bool
	DefaultLanguage      string
	DefaultCalorieTarget int
	Store                db.StoreConfig
	RedisAddr            string
	RedisPassword        string
	Google               GoogleConfig
	NutritionAPIURL      string
	NutritionAPIKey      string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secretKey, err := resolveSecretKey()
	if err != nil {
		return nil, err
	}
	port, err := resolvePort()
	if err != nil {
		return nil, err
	}
	defaultTarget, err := resolveCalorieTarget()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                 port,
		Location:             loadLocation(getEnv("TZ", "UTC")),
		SecretKey:            secretKey,
		CookieSecure:         getEnvBool("COOKIE_SECURE", false),
		DefaultLanguage:      getEnv("DEFAULT_LANGUAGE", "en"),
		DefaultCalorieTarget: defaultTarget,
		Store: db.StoreConfig{
			Driver:      getEnv("STORE_DRIVER", db.DriverSQLite),
			SQLitePath:  getEnv("DB_PATH", filepath.Join("data", "kcal.db")),
			PostgresDSN: os.Getenv("DATABASE_URL"),
			MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDB:     getEnv("MONGO_DB", "kcal"),
		},
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			CallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:"+port+"/auth/google/callback"),
		},
		NutritionAPIURL: os.Getenv("NUTRITION_API_URL"),
		NutritionAPIKey: os.Getenv("NUTRITION_API_KEY"),
	}, nil
}

func resolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[secretKey]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "3000")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveCalorieTarget() (int, error) {
	raw := getEnv("DEFAULT_CALORIE_TARGET", strconv.Itoa(models.DefaultCalorieTarget))
	target, err := strconv.Atoi(raw)
	if err != nil || target < 1 || target > models.MaxDailyCalorieTarget {
		return 0, fmt.Errorf("invalid DEFAULT_CALORIE_TARGET %q", raw)
	}
	return target, nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("invalid %s %q, using %t", key, value, fallback)
		return fallback
	}
	return parsed
}
