// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/store"
)

// DefaultBankURL is where the remote question dataset is published.
const DefaultBankURL = "https://raw.githubusercontent.com/abhisek/quizdeck/main/internal/question/data/questions.json"

// Config holds the application settings.
type Config struct {
	// LogFile receives the TUI's logs. CLI commands log to stderr.
	LogFile  string
	LogLevel slog.Level

	// BankURL is the remote dataset location. Empty disables refresh.
	BankURL     string
	BankTimeout time.Duration

	Casdoor     auth.CasdoorConfig
	AuthTimeout time.Duration
}

// Load reads .env if present, then the QUIZDECK_* environment variables.
func Load() (Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	dataDir, err := store.DataDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		LogFile: getenvDefault("QUIZDECK_LOG_FILE", filepath.Join(dataDir, "quizdeck.log")),
		BankURL: getenvDefault("QUIZDECK_BANK_URL", DefaultBankURL),
		Casdoor: auth.CasdoorConfig{
			Endpoint:     os.Getenv("QUIZDECK_CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("QUIZDECK_CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("QUIZDECK_CASDOOR_CLIENT_SECRET"),
			Certificate:  os.Getenv("QUIZDECK_CASDOOR_CERTIFICATE"),
			Organization: getenvDefault("QUIZDECK_CASDOOR_ORGANIZATION", "built-in"),
			Application:  getenvDefault("QUIZDECK_CASDOOR_APPLICATION", "quizdeck"),
			RedirectURL:  getenvDefault("QUIZDECK_CASDOOR_REDIRECT_URL", "http://localhost:8000/callback"),
		},
	}
	if v := os.Getenv("QUIZDECK_BANK_URL"); v == "off" {
		cfg.BankURL = ""
	}

	if p := os.Getenv("QUIZDECK_CASDOOR_CERTIFICATE_FILE"); p != "" && cfg.Casdoor.Certificate == "" {
		cert, err := os.ReadFile(p)
		if err != nil {
			return Config{}, fmt.Errorf("config: read QUIZDECK_CASDOOR_CERTIFICATE_FILE: %w", err)
		}
		cfg.Casdoor.Certificate = string(cert)
	}

	if cfg.LogLevel, err = getLevel("QUIZDECK_LOG_LEVEL", slog.LevelInfo); err != nil {
		return Config{}, err
	}
	if cfg.BankTimeout, err = getDuration("QUIZDECK_BANK_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AuthTimeout, err = getDuration("QUIZDECK_AUTH_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func getLevel(k string, fallback slog.Level) (slog.Level, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid log level: %w", k, v, err)
	}
	return l, nil
}
