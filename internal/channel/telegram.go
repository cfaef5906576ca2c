package channel

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hwhiteh/whatsapp-telegram-media-bridge/internal/domain"
)

// Telegram delivers forwarded media to a single Telegram chat.
type Telegram struct {
	chatID int64
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

type TelegramConfig struct {
	Token  string
	ChatID int64
	Logger *slog.Logger
}

func NewTelegram(cfg TelegramConfig) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	cfg.Logger.Info("telegram bot connected",
		"username", bot.Self.UserName,
		"id", bot.Self.ID,
	)
	return &Telegram{chatID: cfg.ChatID, bot: bot, logger: cfg.Logger}, nil
}

// SendMedia uploads one attachment to the configured chat, selecting the
// send operation by media kind. Transport failures are propagated so the
// caller's retry layer can observe them.
func (t *Telegram) SendMedia(ctx context.Context, req domain.ForwardRequest) error {
	raw, err := base64.StdEncoding.DecodeString(req.Payload.Data)
	if err != nil {
		return fmt.Errorf("decode media: %w", err)
	}

	file := tgbotapi.FileBytes{Name: req.Filename, Bytes: raw}
	if _, err := t.bot.Send(chattableFor(req.Kind, t.chatID, file, req.Caption)); err != nil {
		return fmt.Errorf("telegram send %s: %w", req.Kind, err)
	}

	t.logger.Debug("telegram upload done",
		"kind", req.Kind,
		"filename", req.Filename,
		"bytes", len(raw),
	)
	return nil
}

// chattableFor maps a media kind onto the matching upload request.
// Stickers and documents both go out as document uploads so the original
// file arrives verbatim.
func chattableFor(kind domain.MediaKind, chatID int64, file tgbotapi.FileBytes, caption string) tgbotapi.Chattable {
	switch kind {
	case domain.KindImage:
		c := tgbotapi.NewPhoto(chatID, file)
		c.Caption = caption
		return c
	case domain.KindVideo:
		c := tgbotapi.NewVideo(chatID, file)
		c.Caption = caption
		return c
	case domain.KindAudio:
		c := tgbotapi.NewAudio(chatID, file)
		c.Caption = caption
		return c
	default:
		c := tgbotapi.NewDocument(chatID, file)
		c.Caption = caption
		return c
	}
}
