package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type FetchErrorKind int

const (
	FetchNetwork FetchErrorKind = iota
	FetchTimeout
	FetchNoURL
)

// FetchError classifies a failed media download. A single failed fetch is
// terminal for that message; the caller reports it to the user instead of
// retrying.
type FetchError struct {
	Kind FetchErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchNoURL:
		return "media metadata response contains no download URL"
	case FetchTimeout:
		return fmt.Sprintf("media fetch timed out: %v", e.Err)
	default:
		return fmt.Sprintf("media fetch failed: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

const (
	metadataTimeout = 10 * time.Second
	downloadTimeout = 15 * time.Second
)

// FetchMedia resolves a media id to raw bytes via two authenticated calls:
// a metadata lookup returning a short-lived signed URL, then the download
// itself.
func (c *Client) FetchMedia(ctx context.Context, mediaID string) ([]byte, error) {
	log.Debug().Str("media_id", mediaID).Msg("Resolving media URL")

	metaCtx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	metaBody, err := c.authorizedGet(metaCtx, c.config.BaseURL+"/"+mediaID)
	if err != nil {
		return nil, classifyFetchError(err)
	}

	var info MediaInfo
	if err := json.Unmarshal(metaBody, &info); err != nil {
		return nil, &FetchError{Kind: FetchNetwork, Err: fmt.Errorf("failed to parse media metadata: %w", err)}
	}

	if info.URL == "" {
		return nil, &FetchError{Kind: FetchNoURL}
	}

	dlCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	data, err := c.authorizedGet(dlCtx, info.URL)
	if err != nil {
		return nil, classifyFetchError(err)
	}

	log.Debug().
		Str("media_id", mediaID).
		Int("size", len(data)).
		Str("mime_type", info.MimeType).
		Msg("Media downloaded")

	return data, nil
}

func (c *Client) authorizedGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

func classifyFetchError(err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: FetchTimeout, Err: err}
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Kind: FetchTimeout, Err: err}
	}

	return &FetchError{Kind: FetchNetwork, Err: err}
}
