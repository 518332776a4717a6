package whatsapp

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

func (c *Client) MarkMessageAsRead(ctx context.Context, messageID string) error {
	log.Debug().Str("message_id", messageID).Msg("Marking message as read")

	payload := MarkAsReadRequest{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageID:        messageID,
	}

	url := c.config.BaseURL + "/" + c.config.PhoneNumberID + "/messages"
	_, err := c.sendRequest(ctx, http.MethodPost, url, payload)
	return err
}
