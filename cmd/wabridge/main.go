package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hwhiteh/whatsapp-telegram-media-bridge/internal/bridge"
	"github.com/hwhiteh/whatsapp-telegram-media-bridge/internal/channel"
	"github.com/hwhiteh/whatsapp-telegram-media-bridge/internal/config"
	"github.com/hwhiteh/whatsapp-telegram-media-bridge/internal/metrics"
)

var (
	version = "0.1.0"
	logger  *slog.Logger
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "wabridge",
		Short: "Forward WhatsApp media from one sender to a Telegram chat",
		Long:  "wabridge relays media attachments sent by a single configured WhatsApp contact to a Telegram chat, with size limits and delivery retries.",
	}

	root.AddCommand(runCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bridge (WhatsApp source + Telegram delivery)",
		Long:  "Reads TELEGRAM_BOT_TOKEN, TELEGRAM_USER_ID and WHATSAPP_PHONE from the environment, pairs with WhatsApp (QR code on first run) and forwards media until interrupted.",
		RunE:  runBridge,
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wabridge %s\n", version)
		},
	}
}

func runBridge(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		// Configuration errors are fatal before anything initializes.
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telegram, err := channel.NewTelegram(channel.TelegramConfig{
		Token:  cfg.Telegram.BotToken,
		ChatID: cfg.Telegram.ChatID,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	forwarder := bridge.NewForwarder(bridge.ForwarderConfig{
		Phone:     cfg.WhatsApp.Phone,
		MaxSizeMB: cfg.Forward.MaxSizeMB,
		Sender:    telegram,
		Logger:    logger,
	})

	whatsapp := channel.NewWhatsApp(channel.WhatsAppConfig{
		SessionPath: cfg.WhatsApp.SessionPath,
		Handler:     forwarder,
		Logger:      logger,
	})

	logger.Info("bridge starting",
		"target", cfg.WhatsApp.Phone,
		"chat_id", cfg.Telegram.ChatID,
		"max_mb", cfg.Forward.MaxSizeMB,
	)

	// Blocks until a shutdown signal cancels ctx.
	err = whatsapp.Start(ctx)

	logger.Info("bridge stopped", "uptime", metrics.Uptime())
	metrics.WriteTo(os.Stderr)
	return err
}
