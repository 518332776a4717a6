package processor

import (
	"context"

	"github.com/relayworks/voicerelay/speech"
)

// PlatformClient is the messaging-platform surface the processor needs:
// media download and user-facing sends.
type PlatformClient interface {
	FetchMedia(ctx context.Context, mediaID string) ([]byte, error)
	SendTextMessage(ctx context.Context, to, body string) error
	MarkMessageAsRead(ctx context.Context, messageID string) error
}

// BotClient delivers user text into the bot backend's conversation.
type BotClient interface {
	CreateMessage(ctx context.Context, conversationID, text string) error
}

// Transcoder converts a compressed voice container into waveform audio.
type Transcoder interface {
	Transcode(ctx context.Context, compressed []byte) ([]byte, error)
}

// Recognizer turns waveform audio into a tagged transcription result.
type Recognizer interface {
	Recognize(ctx context.Context, wav []byte) speech.Result
}

// TaskQueue is the bounded submission interface for background work.
type TaskQueue interface {
	Submit(task func()) error
}
