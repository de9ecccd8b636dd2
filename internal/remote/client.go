// Package remote is the HTTP client for the Doclane processing service and
// the CI webhook.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/doclane/doclane-cli/internal/core/domain"
	"github.com/doclane/doclane-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Submitter = (*Client)(nil)

const (
	// DefaultBaseURL is the production processing service.
	DefaultBaseURL = "https://app.doclane.com"

	// DefaultWebhookURL receives changed-file payloads from CI runs.
	DefaultWebhookURL = "https://hooks.doclane.com/github"

	authPath        = "/api/auth/cli-auth"
	processDocsPath = "/api/integration/process-docs"

	requestTimeout = 60 * time.Second
)

// apiResponse is the service's application-level acknowledgment.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WebhookPayload is the body forwarded to the CI webhook.
type WebhookPayload struct {
	ProjectID    string            `json:"projectId"`
	APIKey       string            `json:"apiKey"`
	ChangedFiles map[string]string `json:"changedFiles"`
}

// Client talks to the processing service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. An empty baseURL selects production.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// AuthURL returns the page the browser opens to start the callback handshake.
func (c *Client) AuthURL() string {
	return c.baseURL + authPath
}

// SubmitDocs sends the normalized corpus in a single request. Any non-2xx
// status or success:false acknowledgment is fatal for the run.
func (c *Client) SubmitDocs(ctx context.Context, req domain.SyncRequest) error {
	return c.post(ctx, c.baseURL+processDocsPath, req)
}

// NotifyWebhook forwards changed files from a pipeline run.
func (c *Client) NotifyWebhook(ctx context.Context, url string, payload WebhookPayload) error {
	if url == "" {
		url = DefaultWebhookURL
	}
	return c.post(ctx, url, payload)
}

func (c *Client) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	var ack apiResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&ack)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := ack.Message
		if message == "" {
			message = resp.Status
		}
		return fmt.Errorf("%w: %s", domain.ErrSubmissionFailed, message)
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrSubmissionFailed, decodeErr)
	}
	if !ack.Success {
		message := ack.Message
		if message == "" {
			message = "service reported failure"
		}
		return fmt.Errorf("%w: %s", domain.ErrSubmissionFailed, message)
	}
	return nil
}
