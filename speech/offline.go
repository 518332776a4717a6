package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog/log"
)

// OfflineClient posts waveform audio to a locally hosted transcription
// server, e.g. a whisper.cpp instance on the same machine.
type OfflineClient struct {
	URL        string
	HTTPClient *http.Client
}

func NewOfflineClient(url string, httpClient *http.Client) *OfflineClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &OfflineClient{
		URL:        url,
		HTTPClient: httpClient,
	}
}

type offlineResponse struct {
	Text string `json:"text"`
}

func (c *OfflineClient) Transcribe(ctx context.Context, wav []byte) (string, error) {
	log.Debug().Str("url", c.URL).Int("size", len(wav)).Msg("Transcribing via offline endpoint")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "voice.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := part.Write(wav); err != nil {
		return "", fmt.Errorf("failed to write file data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result offlineResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response JSON: %w", err)
	}

	return result.Text, nil
}
