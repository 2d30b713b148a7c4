package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string `toml:"database_path"`
	Port         string `toml:"port"`
	LogLevel     string `toml:"log_level"`

	// Session Config
	SessionSecret string        `toml:"session_secret"`
	SessionTTL    time.Duration `toml:"-"`
	CookieSecure  bool          `toml:"cookie_secure"`

	// Planning defaults
	DefaultServings int `toml:"default_servings"`
	DefaultDiners   int `toml:"default_diners"`

	CatalogCacheTTL time.Duration `toml:"-"`

	// LLM Config (Optional, only the recipe importer uses it)
	LLMProvider  string `toml:"llm_provider"`
	GeminiAPIKey string `toml:"gemini_api_key"`
	GroqAPIKey   string `toml:"groq_api_key"`

	ClipperRequestsPerMinute int `toml:"clipper_requests_per_minute"`

	// Telegram Config (Optional for CLI, required for Bot)
	TelegramBotToken       string  `toml:"telegram_bot_token"`
	TelegramWebhookURL     string  `toml:"telegram_webhook_url"`
	TelegramAllowedUserIDs []int64 `toml:"telegram_allowed_user_ids"`
	AdminTelegramID        int64   `toml:"admin_telegram_id"`
	TelegramUsername       string  `toml:"telegram_username"`
}

// fileConfig mirrors the TOML layout; durations are written in hours/minutes.
type fileConfig struct {
	Config
	SessionTTLHours        int `toml:"session_ttl_hours"`
	CatalogCacheTTLMinutes int `toml:"catalog_cache_ttl_minutes"`
}

// Default returns a Config populated with defaults only.
func Default() *Config {
	return &Config{
		DatabasePath:             "data/meal-planner.db",
		Port:                     "8080",
		LogLevel:                 "info",
		SessionTTL:               7 * 24 * time.Hour,
		DefaultServings:          2,
		DefaultDiners:            2,
		CatalogCacheTTL:          10 * time.Minute,
		LLMProvider:              "groq",
		ClipperRequestsPerMinute: 12,
	}
}

// LoadFile reads a TOML file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	fc := fileConfig{Config: *Default()}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := fc.Config
	if fc.SessionTTLHours > 0 {
		cfg.SessionTTL = time.Duration(fc.SessionTTLHours) * time.Hour
	}
	if fc.CatalogCacheTTLMinutes > 0 {
		cfg.CatalogCacheTTL = time.Duration(fc.CatalogCacheTTLMinutes) * time.Minute
	}
	return &cfg, nil
}

// NewFromEnv creates a new Config object from environment variables.
// When MEAL_PLANNER_CONFIG points to a TOML file it is loaded first and the
// environment overrides it.
func NewFromEnv() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("MEAL_PLANNER_CONFIG"); path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	setString(&cfg.DatabasePath, "DATABASE_PATH")
	setString(&cfg.Port, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.SessionSecret, "SESSION_SECRET")
	setString(&cfg.LLMProvider, "LLM_PROVIDER")
	setString(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&cfg.GroqAPIKey, "GROQ_API_KEY")
	setString(&cfg.TelegramBotToken, "TELEGRAM_BOT_TOKEN")
	setString(&cfg.TelegramWebhookURL, "TELEGRAM_WEBHOOK_URL")
	setString(&cfg.TelegramUsername, "TELEGRAM_USERNAME")

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable not set")
	}

	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = secure
	}

	if err := setInt(&cfg.DefaultServings, "DEFAULT_SERVINGS"); err != nil {
		return nil, err
	}
	if err := setInt(&cfg.DefaultDiners, "DEFAULT_DINERS"); err != nil {
		return nil, err
	}
	if err := setInt(&cfg.ClipperRequestsPerMinute, "CLIPPER_REQUESTS_PER_MINUTE"); err != nil {
		return nil, err
	}

	var hours int
	if err := setInt(&hours, "SESSION_TTL_HOURS"); err != nil {
		return nil, err
	}
	if hours > 0 {
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}

	if v := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); v != "" {
		ids, err := parseIDList(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS: %w", err)
		}
		cfg.TelegramAllowedUserIDs = ids
	}
	if v := os.Getenv("ADMIN_TELEGRAM_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
		cfg.AdminTelegramID = id
	}

	if cfg.DefaultServings <= 0 {
		return nil, fmt.Errorf("DEFAULT_SERVINGS must be positive, got %d", cfg.DefaultServings)
	}
	if cfg.DefaultDiners <= 0 {
		return nil, fmt.Errorf("DEFAULT_DINERS must be positive, got %d", cfg.DefaultDiners)
	}

	return cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func parseIDList(v string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
