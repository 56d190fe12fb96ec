package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	Port        int
	DatabaseURL string
	ClientURL   string // Allowed CORS origin and base for unsubscribe/preferences links

	QuranAPIBaseURL string

	EmailJSBaseURL    string
	EmailJSPublicKey  string
	EmailJSPrivateKey string
	EmailJSServiceID  string
	EmailJSTemplateID string

	DispatchCronSpec string // e.g. "0 8 * * *"
	DispatchTimezone string // IANA name, e.g. "UTC"
	SendDelay        time.Duration

	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.EmailJSPublicKey = os.Getenv("EMAILJS_PUBLIC_KEY")
	if cfg.EmailJSPublicKey == "" {
		return nil, fmt.Errorf("EMAILJS_PUBLIC_KEY is not set")
	}
	cfg.EmailJSPrivateKey = os.Getenv("EMAILJS_PRIVATE_KEY")
	if cfg.EmailJSPrivateKey == "" {
		return nil, fmt.Errorf("EMAILJS_PRIVATE_KEY is not set")
	}
	cfg.EmailJSServiceID = os.Getenv("EMAILJS_SERVICE_ID")
	if cfg.EmailJSServiceID == "" {
		return nil, fmt.Errorf("EMAILJS_SERVICE_ID is not set")
	}
	cfg.EmailJSTemplateID = os.Getenv("EMAILJS_TEMPLATE_ID")
	if cfg.EmailJSTemplateID == "" {
		return nil, fmt.Errorf("EMAILJS_TEMPLATE_ID is not set")
	}

	cfg.Port = getEnvInt("PORT", 5001)
	cfg.ClientURL = getEnv("CLIENT_URL", "http://localhost:3000")
	cfg.QuranAPIBaseURL = getEnv("QURAN_API_BASE_URL", "https://quranapi.pages.dev/api")
	cfg.EmailJSBaseURL = getEnv("EMAILJS_BASE_URL", "https://api.emailjs.com")

	cfg.DispatchCronSpec = getEnv("DISPATCH_CRON_SPEC", "0 8 * * *") // Default: 08:00 daily
	cfg.DispatchTimezone = getEnv("DISPATCH_TIMEZONE", "UTC")
	if _, err := time.LoadLocation(cfg.DispatchTimezone); err != nil {
		return nil, fmt.Errorf("invalid DISPATCH_TIMEZONE: %w", err)
	}

	// Pause between individual sends within a dispatch run. Zero disables pacing.
	cfg.SendDelay = time.Duration(getEnvInt("SEND_DELAY_MS", 100)) * time.Millisecond

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))

	return cfg, nil
}

// Location returns the parsed dispatch timezone. Load has already validated it.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.DispatchTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
