package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hwhiteh/whatsapp-telegram-media-bridge/internal/domain"
	"github.com/hwhiteh/whatsapp-telegram-media-bridge/internal/metrics"
)

const (
	// Source platform addressing: bare phone number plus the user-server
	// suffix.
	jidSuffix = "@s.whatsapp.net"

	deliveryAttempts  = 3
	defaultRetryDelay = time.Second
	defaultMaxSizeMB  = 50
)

const (
	replyDownloadFailed = "Could not download the media. Please resend it."
	replyForwardFailed  = "Could not forward the media. Please try again later."
	replyForwarded      = "Media forwarded to Telegram."
)

// Forwarder decides, per inbound message event, whether and how to relay
// its attachment to the destination platform. It is safe for concurrent
// use: all state is read-only after construction.
type Forwarder struct {
	targetJID  string // the only sender the bridge relays from
	maxSizeMB  int
	retryDelay time.Duration
	sender     domain.MediaSender
	logger     *slog.Logger
}

type ForwarderConfig struct {
	Phone      string        // configured source number, may carry a leading +
	MaxSizeMB  int           // size ceiling, 0 = default 50
	RetryDelay time.Duration // between delivery attempts, 0 = default 1s
	Sender     domain.MediaSender
	Logger     *slog.Logger
}

func NewForwarder(cfg ForwarderConfig) *Forwarder {
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = defaultMaxSizeMB
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	return &Forwarder{
		targetJID:  TargetJID(cfg.Phone),
		maxSizeMB:  cfg.MaxSizeMB,
		retryDelay: cfg.RetryDelay,
		sender:     cfg.Sender,
		logger:     cfg.Logger,
	}
}

// TargetJID normalizes a phone number into the source platform's address
// form: leading + stripped, user-server suffix appended.
func TargetJID(phone string) string {
	return strings.TrimPrefix(phone, "+") + jidSuffix
}

// Handle processes one inbound message event to completion. Every failure
// is converted into a best-effort reply in the source conversation; Handle
// never panics or returns an error to the channel that invoked it.
func (f *Forwarder) Handle(ctx context.Context, evt domain.MessageEvent, conv domain.SourceConversation) {
	metrics.EventsSeen.Inc()

	if evt.Sender != f.targetJID {
		f.logger.Debug("ignoring message from non-target sender", "sender", evt.Sender)
		metrics.EventsRejected.Inc()
		return
	}

	// Deliberately silent, unlike the sender filter above: a text message
	// from the target is routine chatter, not worth a line per message.
	if !evt.HasMedia || !evt.Kind.Supported() {
		metrics.EventsRejected.Inc()
		return
	}

	f.logger.Info("forwarding media", "kind", evt.Kind, "sender", evt.Sender)

	payload, err := conv.DownloadMedia(ctx)
	if err != nil || payload == nil {
		f.logger.Error("media download failed", "err", err)
		metrics.EventsFailed.Inc()
		f.reply(ctx, conv, replyDownloadFailed)
		return
	}

	sizeMB := EstimateSizeMB(payload.Data)
	if sizeMB > f.maxSizeMB {
		f.logger.Warn("media exceeds size ceiling", "size_mb", sizeMB, "max_mb", f.maxSizeMB)
		metrics.EventsFailed.Inc()
		f.reply(ctx, conv, fmt.Sprintf("Media is too large: %d MB (limit %d MB).", sizeMB, f.maxSizeMB))
		return
	}

	req := domain.ForwardRequest{
		Payload:  *payload,
		Filename: SanitizeFilename(payload.Filename),
		Caption:  BuildCaption(evt.Sender, evt.Timestamp),
		Kind:     evt.Kind,
	}

	err = Retry(ctx, deliveryAttempts, f.retryDelay, f.logger, func(ctx context.Context) error {
		metrics.DeliveryAttempts.Inc()
		return f.sender.SendMedia(ctx, req)
	})
	if err != nil {
		f.logger.Error("delivery failed", "attempts", deliveryAttempts, "err", err)
		metrics.EventsFailed.Inc()
		f.reply(ctx, conv, replyForwardFailed)
		return
	}

	metrics.EventsForwarded.Inc()
	f.logger.Info("media forwarded", "kind", evt.Kind, "size_mb", sizeMB)
	f.reply(ctx, conv, replyForwarded)
}

func (f *Forwarder) reply(ctx context.Context, conv domain.SourceConversation, text string) {
	if err := conv.Reply(ctx, text); err != nil {
		f.logger.Warn("reply failed", "err", err)
	}
}
