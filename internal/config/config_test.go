package config

import (
	"log/slog"
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_USER_ID", "4242")
	t.Setenv("WHATSAPP_PHONE", "")
	t.Setenv("WHATSAPP_SESSION", "")
	t.Setenv("MAX_MEDIA_MB", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telegram.BotToken != "123:abc" {
		t.Fatalf("token: %q", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != 4242 {
		t.Fatalf("chat id: %d", cfg.Telegram.ChatID)
	}
	if cfg.WhatsApp.Phone != "+10000000000" {
		t.Fatalf("expected placeholder phone, got %q", cfg.WhatsApp.Phone)
	}
	if cfg.WhatsApp.SessionPath != "wabridge.db" {
		t.Fatalf("session path: %q", cfg.WhatsApp.SessionPath)
	}
	if cfg.Forward.MaxSizeMB != 50 {
		t.Fatalf("max size: %d", cfg.Forward.MaxSizeMB)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level: %q", cfg.LogLevel)
	}
}

func TestFromEnv_MissingToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	if _, err := FromEnv(); err == nil || !strings.Contains(err.Error(), "TELEGRAM_BOT_TOKEN") {
		t.Fatalf("expected missing-token error, got: %v", err)
	}
}

func TestFromEnv_MissingUserID(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_USER_ID", "")

	if _, err := FromEnv(); err == nil || !strings.Contains(err.Error(), "TELEGRAM_USER_ID") {
		t.Fatalf("expected missing-user-id error, got: %v", err)
	}
}

func TestFromEnv_BadUserID(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_USER_ID", "not-a-number")

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for non-numeric user id")
	}
}

func TestFromEnv_InvalidPhone(t *testing.T) {
	setRequiredEnv(t)

	for _, phone := range []string{"15551234567", "+", "+155x", "hello"} {
		t.Setenv("WHATSAPP_PHONE", phone)
		if _, err := FromEnv(); err == nil {
			t.Fatalf("phone %q should be rejected", phone)
		}
	}
}

func TestFromEnv_ValidPhone(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WHATSAPP_PHONE", "+4915112345678")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WhatsApp.Phone != "+4915112345678" {
		t.Fatalf("phone: %q", cfg.WhatsApp.Phone)
	}
}

func TestFromEnv_MaxMediaOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_MEDIA_MB", "20")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Forward.MaxSizeMB != 20 {
		t.Fatalf("max size: %d", cfg.Forward.MaxSizeMB)
	}
}

func TestFromEnv_MaxMediaRejectsGarbage(t *testing.T) {
	setRequiredEnv(t)

	for _, v := range []string{"-1", "0", "many"} {
		t.Setenv("MAX_MEDIA_MB", v)
		if _, err := FromEnv(); err == nil {
			t.Fatalf("MAX_MEDIA_MB=%q should be rejected", v)
		}
	}
}

func TestFromEnv_InvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestSlogLevel_Mapping(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range cases {
		cfg := &Config{LogLevel: name}
		if got := cfg.SlogLevel(); got != want {
			t.Fatalf("%s: got %v, want %v", name, got, want)
		}
	}
}
