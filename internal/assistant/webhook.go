package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Reply is the extracted payload from a successful remote assistant call.
type Reply struct {
	// Answer is the assistant's text. The wire payload may carry it in either
	// an "answer" or a "response" field; "answer" wins when both are present.
	Answer string

	// Providers and Plans are catalog identifiers the remote answer refers
	// to. Either may be empty.
	Providers []string
	Plans     []string
}

// Remote is the live assistant endpoint the orchestrator consults when not in
// demo mode. Tests inject a stub; production uses *WebhookClient.
type Remote interface {
	Send(ctx context.Context, sessionID, message string) (Reply, error)
}

// WebhookClient posts chat messages to the external assistant webhook. One
// synchronous request per message, no retries — any failure is handled by the
// orchestrator's demo fallback, never surfaced to the user.
type WebhookClient struct {
	url        string
	authKey    string
	httpClient *http.Client
}

// NewWebhookClient builds a client for the given endpoint. authKey is sent as
// the X-App-Auth shared-secret header. The timeout bounds the whole request;
// a hung endpoint must not stall the chat beyond it.
func NewWebhookClient(url, authKey string, timeout time.Duration) *WebhookClient {
	return &WebhookClient{
		url:     url,
		authKey: authKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ─── WIRE SHAPES ─────────────────────────────────────────────────────────────

type webhookRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type webhookResponse struct {
	Answer    string   `json:"answer"`
	Response  string   `json:"response"`
	Providers []string `json:"providers"`
	Plans     []string `json:"plans"`
}

// Send issues the POST and extracts the reply. Non-2xx statuses, transport
// errors, and malformed bodies all come back as errors.
func (c *WebhookClient) Send(ctx context.Context, sessionID, message string) (Reply, error) {
	bodyBytes, err := json.Marshal(webhookRequest{
		SessionID: sessionID,
		Message:   message,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("assistant: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return Reply{}, fmt.Errorf("assistant: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-App-Auth", c.authKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("assistant: webhook request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB cap
	if err != nil {
		return Reply{}, fmt.Errorf("assistant: read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Reply{}, fmt.Errorf("assistant: webhook status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	var parsed webhookResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return Reply{}, fmt.Errorf("assistant: unmarshal response: %w", err)
	}

	answer := parsed.Answer
	if answer == "" {
		answer = parsed.Response
	}

	return Reply{
		Answer:    answer,
		Providers: parsed.Providers,
		Plans:     parsed.Plans,
	}, nil
}
