package domain

import "context"

// SourceConversation exposes the per-message operations of the source
// platform: fetching the attachment behind the message and replying into
// the conversation the message came from.
type SourceConversation interface {
	DownloadMedia(ctx context.Context) (*MediaPayload, error)
	Reply(ctx context.Context, text string) error
}

// MediaSender delivers a prepared forward to the destination platform.
// Implementations must surface transport failures as errors rather than
// dropping silently, so the retry layer can observe them.
type MediaSender interface {
	SendMedia(ctx context.Context, req ForwardRequest) error
}

// MessageHandler is the single entry point inbound message events are
// dispatched to. The source channel invokes it directly; there is no
// handler registry.
type MessageHandler interface {
	Handle(ctx context.Context, evt MessageEvent, conv SourceConversation)
}
