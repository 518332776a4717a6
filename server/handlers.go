package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/relayworks/voicerelay/botpress"
	"github.com/relayworks/voicerelay/whatsapp"
)

// verifyWebhookHandler answers the platform's subscription handshake: echo
// the challenge when the verify token matches, reject otherwise.
func (s *Server) verifyWebhookHandler(c fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.WhatsAppVerifyToken)) == 1 {
		log.Info().Str("mode", mode).Msg("Webhook verified")
		return c.SendString(challenge)
	}

	log.Warn().Str("mode", mode).Msg("Webhook verification failed")
	return c.Status(fiber.StatusForbidden).SendString("Verification failed")
}

// inboundWebhookHandler accepts platform deliveries. It always acknowledges
// with success: a non-2xx here would trigger the platform's retry storm,
// which the relay must never invite. Internal failures are logged and
// handled per message.
func (s *Server) inboundWebhookHandler(c fiber.Ctx) error {
	body := c.Body()

	if s.cfg.WhatsAppAppSecret != "" {
		if !validSignature(body, c.Get("X-Hub-Signature-256"), s.cfg.WhatsAppAppSecret) {
			log.Warn().Msg("Rejecting webhook delivery with invalid signature")
			return c.Status(fiber.StatusForbidden).SendString("Invalid signature")
		}
	}

	var payload whatsapp.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error().Err(err).Msg("Error parsing webhook payload")
		return c.JSON(fiber.Map{"status": "success"})
	}

	s.processor.HandleWebhookPayload(payload)

	return c.JSON(fiber.Map{"status": "success"})
}

// botCallbackHandler receives bot-originated replies. Parse failure is the
// one case where an internal error shows up in an HTTP response; downstream
// send failures are logged, not surfaced.
func (s *Server) botCallbackHandler(c fiber.Ctx) error {
	var payload botpress.CallbackPayload
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		log.Error().Err(err).Msg("Error parsing bot callback payload")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "invalid callback payload",
		})
	}

	if payload.Type == "text" && payload.ConversationID != "" && payload.Payload.Text != "" {
		s.processor.HandleBotCallback(payload.ConversationID, payload.Payload.Text)
	} else {
		log.Debug().Str("type", payload.Type).Msg("Ignoring non-text bot callback")
	}

	return c.JSON(fiber.Map{"status": "success"})
}

// healthCheckHandler reports liveness and whether required credentials are
// present. Booleans only, never the values.
func (s *Server) healthCheckHandler(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":              "healthy",
		"whatsapp_configured": s.cfg.WhatsAppToken != "" && s.cfg.WhatsAppPhoneID != "",
		"botpress_configured": s.cfg.BotpressToken != "" && s.cfg.BotpressBotID != "",
		"speech_configured":   s.cfg.OpenAIKey != "" || s.cfg.OfflineSTTURL != "",
	})
}

func validSignature(body []byte, header, secret string) bool {
	provided, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(provided), []byte(expected))
}
