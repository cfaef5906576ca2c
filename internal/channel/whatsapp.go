package channel

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	waE2E "go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
	_ "modernc.org/sqlite"

	"github.com/hwhiteh/whatsapp-telegram-media-bridge/internal/domain"
)

const reconnectDelay = 5 * time.Second

// WhatsApp is the source channel. It owns the multidevice session (sqlite
// backed, so pairing survives restarts), renders the pairing QR code on
// first run, and dispatches every incoming message to a single handler.
type WhatsApp struct {
	sessionPath string
	handler     domain.MessageHandler
	logger      *slog.Logger

	client    *whatsmeow.Client
	container *sqlstore.Container
}

type WhatsAppConfig struct {
	SessionPath string
	Handler     domain.MessageHandler
	Logger      *slog.Logger
}

func NewWhatsApp(cfg WhatsAppConfig) *WhatsApp {
	return &WhatsApp{
		sessionPath: cfg.SessionPath,
		handler:     cfg.Handler,
		logger:      cfg.Logger,
	}
}

// Start opens the session store, connects, and blocks until ctx is
// cancelled. A store that cannot be opened is a hard error; a connection
// that cannot be established is logged and retried, since the reconnect
// path owns transient network trouble.
func (w *WhatsApp) Start(ctx context.Context) error {
	container, err := sqlstore.New(ctx, "sqlite",
		fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", w.sessionPath),
		waLog.Stdout("session", "WARN", false))
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	w.container = container

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return fmt.Errorf("load device: %w", err)
	}

	w.client = whatsmeow.NewClient(device, waLog.Stdout("whatsapp", "WARN", false))
	// The reconnect policy (fixed 5s) lives here, not in the library.
	w.client.EnableAutoReconnect = false
	w.client.AddEventHandler(func(evt any) { w.handleEvent(ctx, evt) })

	if err := w.connect(ctx); err != nil {
		w.logger.Error("initial connect failed", "err", err)
		go w.reconnect(ctx)
	}

	<-ctx.Done()
	w.Stop()
	return nil
}

// Stop disconnects the client and closes the session store. Safe to call
// more than once.
func (w *WhatsApp) Stop() {
	if w.client != nil {
		w.client.Disconnect()
	}
	if w.container != nil {
		w.container.Close()
		w.container = nil
	}
}

func (w *WhatsApp) connect(ctx context.Context) error {
	if w.client.Store.ID == nil {
		// Not paired yet: render QR codes until the phone scans one.
		qrChan, err := w.client.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("qr channel: %w", err)
		}
		if err := w.client.Connect(); err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		go func() {
			for evt := range qrChan {
				switch evt.Event {
				case "code":
					w.logger.Info("scan the QR code with the WhatsApp app to pair")
					qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
				case "success":
					w.logger.Info("pairing complete")
				default:
					w.logger.Warn("pairing event", "event", evt.Event)
				}
			}
		}()
		return nil
	}
	if err := w.client.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

func (w *WhatsApp) reconnect(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(reconnectDelay):
	}
	w.logger.Info("reconnecting to whatsapp")
	if err := w.client.Connect(); err != nil {
		w.logger.Error("reconnect failed", "err", err)
		go w.reconnect(ctx)
	}
}

func (w *WhatsApp) handleEvent(ctx context.Context, raw any) {
	switch evt := raw.(type) {
	case *events.Connected:
		w.logger.Info("whatsapp connected")
	case *events.LoggedOut:
		w.logger.Error("whatsapp session logged out, delete the session file and re-pair",
			"reason", evt.Reason)
	case *events.Disconnected:
		w.logger.Warn("whatsapp disconnected", "reconnect_in", reconnectDelay)
		go w.reconnect(ctx)
	case *events.Message:
		w.handleMessage(ctx, evt)
	}
}

func (w *WhatsApp) handleMessage(ctx context.Context, evt *events.Message) {
	if evt.Info.IsFromMe {
		return
	}

	kind, hasMedia, mimeType, filename := classifyMedia(evt.Message)
	w.handler.Handle(ctx, domain.MessageEvent{
		Sender:    evt.Info.Sender.ToNonAD().String(),
		Kind:      kind,
		Timestamp: evt.Info.Timestamp.Unix(),
		HasMedia:  hasMedia,
	}, &waConversation{
		client:   w.client,
		chat:     evt.Info.Chat,
		message:  evt.Message,
		mimeType: mimeType,
		filename: filename,
	})
}

// classifyMedia maps the populated message field onto a media kind.
// Text and unsupported content come back as KindOther without media.
func classifyMedia(msg *waE2E.Message) (kind domain.MediaKind, hasMedia bool, mimeType, filename string) {
	switch {
	case msg.GetImageMessage() != nil:
		return domain.KindImage, true, msg.GetImageMessage().GetMimetype(), ""
	case msg.GetVideoMessage() != nil:
		return domain.KindVideo, true, msg.GetVideoMessage().GetMimetype(), ""
	case msg.GetAudioMessage() != nil:
		return domain.KindAudio, true, msg.GetAudioMessage().GetMimetype(), ""
	case msg.GetDocumentMessage() != nil:
		doc := msg.GetDocumentMessage()
		return domain.KindDocument, true, doc.GetMimetype(), doc.GetFileName()
	case msg.GetStickerMessage() != nil:
		return domain.KindSticker, true, msg.GetStickerMessage().GetMimetype(), ""
	}
	return domain.KindOther, false, "", ""
}

// waConversation adapts one received message to the bridge's source
// conversation operations.
type waConversation struct {
	client   *whatsmeow.Client
	chat     types.JID
	message  *waE2E.Message
	mimeType string
	filename string
}

func (c *waConversation) DownloadMedia(ctx context.Context) (*domain.MediaPayload, error) {
	data, err := c.client.DownloadAny(ctx, c.message)
	if err != nil {
		return nil, fmt.Errorf("download media: %w", err)
	}
	return &domain.MediaPayload{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: c.mimeType,
		Filename: c.filename,
	}, nil
}

func (c *waConversation) Reply(ctx context.Context, text string) error {
	_, err := c.client.SendMessage(ctx, c.chat, &waE2E.Message{
		Conversation: proto.String(text),
	})
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}
