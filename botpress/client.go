// Package botpress is a minimal client for the Botpress messaging API. The
// relay only needs one operation: pushing a user message into a
// conversation. Bot replies arrive asynchronously through the callback
// webhook, not through this client.
package botpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type Config struct {
	BaseURL string
	BotID   string
	Token   string
}

type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(baseURL, botID, token string, httpClient http.Client) Client {
	client := Client{
		config: Config{
			BaseURL: baseURL,
			BotID:   botID,
			Token:   token,
		},
		httpClient: &httpClient,
	}

	return client
}

// CreateMessage delivers text into the conversation keyed by the platform
// sender id. HTTP 200/201 count as success; everything else is an error the
// caller logs and converts into a user-visible apology.
func (c *Client) CreateMessage(ctx context.Context, conversationID, text string) error {
	message := MessageRequest{
		Type:    "text",
		Payload: MessagePayload{Text: text},
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/conversations/%s/messages", c.config.BaseURL, c.config.BotID, conversationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-bot-id", c.config.BotID)
	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
