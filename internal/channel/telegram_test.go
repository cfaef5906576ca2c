package channel

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hwhiteh/whatsapp-telegram-media-bridge/internal/domain"
)

func TestChattableFor_KindMapping(t *testing.T) {
	file := tgbotapi.FileBytes{Name: "f.bin", Bytes: []byte("x")}

	if _, ok := chattableFor(domain.KindImage, 1, file, "c").(tgbotapi.PhotoConfig); !ok {
		t.Fatal("image should map to a photo upload")
	}
	if _, ok := chattableFor(domain.KindVideo, 1, file, "c").(tgbotapi.VideoConfig); !ok {
		t.Fatal("video should map to a video upload")
	}
	if _, ok := chattableFor(domain.KindAudio, 1, file, "c").(tgbotapi.AudioConfig); !ok {
		t.Fatal("audio should map to an audio upload")
	}
	if _, ok := chattableFor(domain.KindDocument, 1, file, "c").(tgbotapi.DocumentConfig); !ok {
		t.Fatal("document should map to a document upload")
	}
	if _, ok := chattableFor(domain.KindSticker, 1, file, "c").(tgbotapi.DocumentConfig); !ok {
		t.Fatal("sticker should map to a document upload")
	}
}

func TestChattableFor_CarriesCaption(t *testing.T) {
	file := tgbotapi.FileBytes{Name: "photo.jpg", Bytes: []byte("x")}

	photo, ok := chattableFor(domain.KindImage, 42, file, "hello").(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatal("expected a photo upload")
	}
	if photo.Caption != "hello" {
		t.Fatalf("caption not carried, got %q", photo.Caption)
	}
	if photo.ChatID != 42 {
		t.Fatalf("chat ID not carried, got %d", photo.ChatID)
	}
}
