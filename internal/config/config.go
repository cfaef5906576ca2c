// Package config builds the immutable bridge configuration from the
// environment. It is read once at startup and passed explicitly into the
// components that need it; nothing reads ambient state at call time.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
)

// Config is the root configuration for the bridge.
type Config struct {
	Telegram TelegramConfig
	WhatsApp WhatsAppConfig
	Forward  ForwardConfig
	LogLevel string
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64 // destination chat (the owner's user ID)
}

type WhatsAppConfig struct {
	Phone       string // target sender, + followed by digits
	SessionPath string // sqlite file backing the pairing session
}

type ForwardConfig struct {
	MaxSizeMB int
}

const (
	defaultPhone       = "+10000000000"
	defaultSessionPath = "wabridge.db"
	defaultMaxSizeMB   = 50
	defaultLogLevel    = "info"
)

var phonePattern = regexp.MustCompile(`^\+[0-9]+$`)

// FromEnv reads the configuration from environment variables and
// validates it. A missing required variable is an error; the caller is
// expected to treat that as fatal before anything else initializes.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		WhatsApp: WhatsAppConfig{
			Phone:       envOr("WHATSAPP_PHONE", defaultPhone),
			SessionPath: envOr("WHATSAPP_SESSION", defaultSessionPath),
		},
		Forward:  ForwardConfig{MaxSizeMB: defaultMaxSizeMB},
		LogLevel: envOr("LOG_LEVEL", defaultLogLevel),
	}

	if raw := os.Getenv("TELEGRAM_USER_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_USER_ID: not a number: %q", raw)
		}
		cfg.Telegram.ChatID = id
	}

	if raw := os.Getenv("MAX_MEDIA_MB"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MAX_MEDIA_MB: must be a positive number, got %q", raw)
		}
		cfg.Forward.MaxSizeMB = n
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks required fields and value formats.
func Validate(cfg *Config) error {
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.Telegram.ChatID == 0 {
		return fmt.Errorf("TELEGRAM_USER_ID is required")
	}
	if !phonePattern.MatchString(cfg.WhatsApp.Phone) {
		return fmt.Errorf("WHATSAPP_PHONE: expected +<digits>, got %q", cfg.WhatsApp.Phone)
	}
	if cfg.WhatsApp.SessionPath == "" {
		return fmt.Errorf("WHATSAPP_SESSION must not be empty")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL: unknown level %q", cfg.LogLevel)
	}
	return nil
}

// SlogLevel maps the configured log level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
