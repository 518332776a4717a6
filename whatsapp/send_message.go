package whatsapp

import (
	"context"
	"net/http"
)

// SendTextMessage posts a text reply to the user. Failures are returned to
// the caller, which logs and degrades; they are never fatal.
func (c *Client) SendTextMessage(ctx context.Context, to, body string) error {
	message := TextMessageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             TextBody{Body: body},
	}

	url := c.config.BaseURL + "/" + c.config.PhoneNumberID + "/messages"
	_, err := c.sendRequest(ctx, http.MethodPost, url, message)
	return err
}
