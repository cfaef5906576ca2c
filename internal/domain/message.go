package domain

// MediaKind is the coarse category of an attachment, used to select the
// destination send operation.
type MediaKind string

const (
	KindImage    MediaKind = "image"
	KindVideo    MediaKind = "video"
	KindAudio    MediaKind = "audio"
	KindDocument MediaKind = "document"
	KindSticker  MediaKind = "sticker"
	KindOther    MediaKind = "other"
)

// Supported reports whether the kind has a destination send operation.
func (k MediaKind) Supported() bool {
	switch k {
	case KindImage, KindVideo, KindAudio, KindDocument, KindSticker:
		return true
	}
	return false
}

// MessageEvent is one inbound message notification from the source
// platform. Immutable; consumed once by the forwarder.
type MessageEvent struct {
	Sender    string // source platform address of the conversation partner
	Kind      MediaKind
	Timestamp int64 // seconds since epoch
	HasMedia  bool
}

// MediaPayload is a downloaded attachment, held only for the duration of
// one forward. Data is the base64-encoded media body as handed over by the
// source platform.
type MediaPayload struct {
	Data     string
	MimeType string
	Filename string // original name; empty when the platform supplied none
}

// ForwardRequest is the prepared delivery unit consumed by the destination
// adapter. Caption is pre-truncated; Filename is already sanitized.
type ForwardRequest struct {
	Payload  MediaPayload
	Filename string
	Caption  string
	Kind     MediaKind
}
