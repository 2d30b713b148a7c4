package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "secret")
		t.Setenv("DATABASE_PATH", "/tmp/test.db")
		t.Setenv("DEFAULT_SERVINGS", "4")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "1, 2,3")
		t.Setenv("SESSION_TTL_HOURS", "2")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.SessionSecret != "secret" {
			t.Errorf("Expected SessionSecret to be 'secret', got '%s'", cfg.SessionSecret)
		}
		if cfg.DatabasePath != "/tmp/test.db" {
			t.Errorf("Expected DatabasePath to be '/tmp/test.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.DefaultServings != 4 {
			t.Errorf("Expected DefaultServings to be 4, got %d", cfg.DefaultServings)
		}
		if cfg.DefaultDiners != 2 {
			t.Errorf("Expected DefaultDiners to default to 2, got %d", cfg.DefaultDiners)
		}
		if len(cfg.TelegramAllowedUserIDs) != 3 || cfg.TelegramAllowedUserIDs[2] != 3 {
			t.Errorf("Expected allowed IDs [1 2 3], got %v", cfg.TelegramAllowedUserIDs)
		}
		if cfg.SessionTTL != 2*time.Hour {
			t.Errorf("Expected SessionTTL 2h, got %v", cfg.SessionTTL)
		}
	})

	t.Run("MissingSessionSecret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		os.Unsetenv("SESSION_SECRET")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing SESSION_SECRET, got nil")
		}
		expectedError := "SESSION_SECRET environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("InvalidServings", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "secret")
		t.Setenv("DEFAULT_SERVINGS", "0")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for zero DEFAULT_SERVINGS, got nil")
		}
	})

	t.Run("FileWithEnvOverride", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
database_path = "file.db"
session_secret = "from-file"
default_diners = 3
session_ttl_hours = 12
telegram_allowed_user_ids = [10, 20]
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("MEAL_PLANNER_CONFIG", path)
		t.Setenv("SESSION_SECRET", "")
		os.Unsetenv("SESSION_SECRET")
		t.Setenv("DATABASE_PATH", "env.db")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "env.db" {
			t.Errorf("Expected env to override DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.SessionSecret != "from-file" {
			t.Errorf("Expected SessionSecret from file, got '%s'", cfg.SessionSecret)
		}
		if cfg.DefaultDiners != 3 {
			t.Errorf("Expected DefaultDiners 3, got %d", cfg.DefaultDiners)
		}
		if cfg.SessionTTL != 12*time.Hour {
			t.Errorf("Expected SessionTTL 12h, got %v", cfg.SessionTTL)
		}
		if len(cfg.TelegramAllowedUserIDs) != 2 {
			t.Errorf("Expected 2 allowed IDs, got %v", cfg.TelegramAllowedUserIDs)
		}
	})
}
