// Package processor owns the relay's message flow: classifying inbound
// webhook payloads, forwarding text to the bot backend, and running the
// voice pipeline for audio messages.
package processor

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/relayworks/voicerelay/metrics"
	"github.com/relayworks/voicerelay/pool"
	"github.com/relayworks/voicerelay/whatsapp"
)

const (
	msgProcessing    = "🎤 Processing your voice message..."
	msgDownloadFail  = "Sorry, I couldn't download the voice message. Please try again."
	msgCannotGrasp   = "Sorry, I couldn't understand the voice message. Could you please speak more clearly or send a text message?"
	msgForwardFailed = "I heard: %q, but I couldn't reach the assistant right now. Please try again."
)

type Processor struct {
	platform   PlatformClient
	bot        BotClient
	transcoder Transcoder
	recognizer Recognizer
	queue      TaskQueue
}

func New(platform PlatformClient, bot BotClient, transcoder Transcoder, recognizer Recognizer, queue TaskQueue) *Processor {
	return &Processor{
		platform:   platform,
		bot:        bot,
		transcoder: transcoder,
		recognizer: recognizer,
		queue:      queue,
	}
}

// HandleWebhookPayload dispatches every message in the envelope. It never
// returns an error: the webhook must acknowledge the platform regardless of
// what happens downstream.
func (p *Processor) HandleWebhookPayload(payload whatsapp.WebhookPayload) {
	for _, msg := range ExtractMessages(payload) {
		p.dispatch(msg)
	}
}

func (p *Processor) dispatch(msg InboundMessage) {
	metrics.InboundMessages.WithLabelValues(msg.Kind.String()).Inc()

	log.Info().
		Str("sender", msg.SenderID).
		Str("message_id", msg.MessageID).
		Str("kind", msg.Kind.String()).
		Msg("Dispatching inbound message")

	if msg.MessageID != "" {
		if err := p.platform.MarkMessageAsRead(context.Background(), msg.MessageID); err != nil {
			log.Warn().Err(err).Str("message_id", msg.MessageID).Msg("Failed to mark message as read")
		}
	}

	switch msg.Kind {
	case KindText:
		p.submitTextForward(msg)
	case KindAudio:
		// The acknowledgment goes out before the pipeline is queued so the
		// user sees progress even if the pipeline stalls.
		p.notify(context.Background(), msg.SenderID, msgProcessing)
		p.submitVoicePipeline(msg)
	default:
		log.Info().Str("type", msg.RawType).Msg("Ignoring unsupported message type")
	}
}

func (p *Processor) submitTextForward(msg InboundMessage) {
	err := p.queue.Submit(func() {
		p.forwardText(msg.SenderID, msg.Text)
	})
	if err != nil {
		p.logSubmitFailure(err, msg)
	}
}

func (p *Processor) submitVoicePipeline(msg InboundMessage) {
	err := p.queue.Submit(func() {
		p.runVoicePipeline(msg)
	})
	if err != nil {
		p.logSubmitFailure(err, msg)
		p.notify(context.Background(), msg.SenderID, msgCannotGrasp)
		metrics.PipelineOutcomes.WithLabelValues("queue_rejected").Inc()
	}
}

func (p *Processor) logSubmitFailure(err error, msg InboundMessage) {
	if errors.Is(err, pool.ErrQueueFull) {
		metrics.QueueRejections.Inc()
	}
	log.Error().
		Err(err).
		Str("sender", msg.SenderID).
		Str("kind", msg.Kind.String()).
		Msg("Failed to queue task")
}

// forwardText delivers user text to the bot backend. Failures are logged
// and swallowed; the bot's reply path is asynchronous anyway.
func (p *Processor) forwardText(conversationID, text string) bool {
	err := p.bot.CreateMessage(context.Background(), conversationID, text)
	if err != nil {
		metrics.OutboundSends.WithLabelValues("bot", "error").Inc()
		log.Error().Err(err).Str("conversation_id", conversationID).Msg("Failed to forward message to bot")
		return false
	}

	metrics.OutboundSends.WithLabelValues("bot", "ok").Inc()
	return true
}

// HandleBotCallback relays a bot-originated text reply to the user. Send
// failures are logged, never surfaced to the bot backend.
func (p *Processor) HandleBotCallback(conversationID, text string) {
	log.Info().Str("conversation_id", conversationID).Msg("Relaying bot reply to user")
	p.notify(context.Background(), conversationID, text)
}

// notify sends a platform text message, absorbing any failure.
func (p *Processor) notify(ctx context.Context, recipientID, body string) bool {
	err := p.platform.SendTextMessage(ctx, recipientID, body)
	if err != nil {
		metrics.OutboundSends.WithLabelValues("platform", "error").Inc()
		log.Error().Err(err).Str("recipient", recipientID).Msg("Failed to send platform message")
		return false
	}

	metrics.OutboundSends.WithLabelValues("platform", "ok").Inc()
	return true
}
