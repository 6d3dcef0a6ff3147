package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultWebhookTimeout bounds a webhook delivery when no explicit timeout
// is configured.
const DefaultWebhookTimeout = 10 * time.Second

// webhookPayload is the wire format expected by group-chat robot webhooks:
// a plain-text message combining title and body.
type webhookPayload struct {
	MsgType string      `json:"msgtype"`
	Text    webhookText `json:"text"`
}

type webhookText struct {
	Content string `json:"content"`
}

// WebhookChannel posts notifications to a configured webhook URL. Any
// non-2xx response counts as a delivery failure for this channel only.
type WebhookChannel struct {
	url    string
	client *http.Client
}

// NewWebhookChannel creates a WebhookChannel posting to the given URL with
// the given per-request timeout (DefaultWebhookTimeout when zero).
func NewWebhookChannel(url string, timeout time.Duration) *WebhookChannel {
	if timeout <= 0 {
		timeout = DefaultWebhookTimeout
	}
	return &WebhookChannel{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Name identifies the channel in logs and dispatch outcomes.
func (c *WebhookChannel) Name() string {
	return "webhook"
}

// Send posts a text message combining title and body to the webhook URL.
func (c *WebhookChannel) Send(ctx context.Context, title, body string) error {
	payload, err := json.Marshal(webhookPayload{
		MsgType: "text",
		Text:    webhookText{Content: fmt.Sprintf("%s\n\n%s", title, body)},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Include a short slice of the response for debugging; webhook
		// providers put the real error in the body.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, snippet)
	}

	return nil
}
