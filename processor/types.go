package processor

import (
	"github.com/relayworks/voicerelay/whatsapp"
)

type MessageKind int

const (
	KindText MessageKind = iota
	KindAudio
	KindOther
)

func (k MessageKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindAudio:
		return "audio"
	default:
		return "other"
	}
}

// InboundMessage is one platform message normalized out of the webhook
// envelope. It is consumed immediately and never stored.
type InboundMessage struct {
	SenderID  string
	MessageID string
	Kind      MessageKind
	Text      string
	MediaID   string
	RawType   string
}

// ExtractMessages flattens the nested webhook envelope into inbound
// messages. Entries carrying only delivery statuses produce nothing.
func ExtractMessages(payload whatsapp.WebhookPayload) []InboundMessage {
	var messages []InboundMessage

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				messages = append(messages, normalize(msg))
			}
		}
	}

	return messages
}

func normalize(msg whatsapp.Message) InboundMessage {
	out := InboundMessage{
		SenderID:  msg.From,
		MessageID: msg.ID,
		RawType:   msg.Type,
	}

	switch {
	case msg.Type == "text" && msg.Text != nil:
		out.Kind = KindText
		out.Text = msg.Text.Body
	case msg.Type == "audio" && msg.Audio != nil:
		out.Kind = KindAudio
		out.MediaID = msg.Audio.ID
	default:
		out.Kind = KindOther
	}

	return out
}
