package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned by Send when the API URL or key is missing.
var ErrNotConfigured = errors.New("newsletter send API is not configured")

// Message is the payload the external send API accepts.
type Message struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
	To      string `json:"to"`
	From    string `json:"from"`
}

// Client posts rendered digests to the external email-sending API. The
// API contract is minimal: JSON in, any 2xx means accepted.
type Client struct {
	apiURL string
	apiKey string
	client *http.Client
	log    zerolog.Logger
}

func New(apiURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
		log:    log.With().Str("component", "mailer").Logger(),
	}
}

// Send posts the message. The returned error carries the HTTP status for
// rejections so the CLI can report it before exiting non-zero.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c.apiURL == "" || c.apiKey == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding send payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send API returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	c.log.Info().Str("subject", msg.Subject).Str("to", msg.To).Msg("Digest sent")
	return nil
}
