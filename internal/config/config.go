package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	UI            string // "glass" or "retro"
	DatabaseURL   string
	ProfileDir    string // local store, auth cache, logs
	LogPath       string
	ScanInterval  time.Duration
	GoogleSignIn  bool
	TelegramToken string
	TelegramChat  int64
	Development   bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		UI:            strings.ToLower(strings.TrimSpace(os.Getenv("KAIZEN_UI"))),
		DatabaseURL:   strings.TrimSpace(os.Getenv("KAIZEN_DATABASE_URL")),
		ProfileDir:    strings.TrimSpace(os.Getenv("KAIZEN_PROFILE_DIR")),
		ScanInterval:  parseSeconds(strings.TrimSpace(os.Getenv("KAIZEN_SCAN_SECONDS"))),
		GoogleSignIn:  os.Getenv("KAIZEN_GOOGLE_SIGNIN") == "1",
		TelegramToken: strings.TrimSpace(os.Getenv("KAIZEN_TELEGRAM_TOKEN")),
		TelegramChat:  parseChatID(strings.TrimSpace(os.Getenv("KAIZEN_TELEGRAM_CHAT"))),
		Development:   os.Getenv("KAIZEN_DEV") == "1",
	}

	switch cfg.UI {
	case "":
		cfg.UI = "retro"
	case "glass", "retro":
	default:
		return cfg, fmt.Errorf("KAIZEN_UI must be glass or retro, got %q", cfg.UI)
	}

	if cfg.ProfileDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.ProfileDir = filepath.Join(home, ".kaizen")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = filepath.Join(cfg.ProfileDir, "kaizen.db")
	}
	cfg.LogPath = filepath.Join(cfg.ProfileDir, "kaizen.log")

	if cfg.ScanInterval == 0 {
		cfg.ScanInterval = 30 * time.Second
	}

	if cfg.TelegramToken != "" && cfg.TelegramChat == 0 {
		return cfg, fmt.Errorf("KAIZEN_TELEGRAM_CHAT is required with KAIZEN_TELEGRAM_TOKEN")
	}

	return cfg, nil
}

func parseSeconds(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func parseChatID(raw string) int64 {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
