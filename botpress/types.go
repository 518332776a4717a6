package botpress

type MessageRequest struct {
	Type    string         `json:"type"`
	Payload MessagePayload `json:"payload"`
}

type MessagePayload struct {
	Text string `json:"text"`
}

// CallbackPayload is what Botpress posts to the relay's callback webhook
// when the bot produces a reply.
type CallbackPayload struct {
	ConversationID string         `json:"conversationId"`
	Type           string         `json:"type"`
	Payload        MessagePayload `json:"payload"`
}
