package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgallion1/docredact/internal/match"
)

// Client delivers job completion webhooks.
type Client struct {
	defaultURL string
	token      string
	httpClient *http.Client
}

func NewClient(defaultURL, token string) *Client {
	return &Client{
		defaultURL: defaultURL,
		token:      token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Completion is the payload POSTed when a job reaches a terminal state.
type Completion struct {
	JobID       string         `json:"job_id"`
	Status      string         `json:"status"`
	Filename    string         `json:"filename"`
	ContentHash string         `json:"content_hash,omitempty"`
	Words       int            `json:"words"`
	Phrases     int            `json:"phrases"`
	Pages       int            `json:"pages"`
	Matches     int            `json:"matches"`
	Records     []match.Record `json:"records,omitempty"`
	Errors      []string       `json:"errors,omitempty"`
	CompletedAt string         `json:"completed_at"`
}

// JobCompleted POSTs the payload to url, falling back to the configured
// default. A job with no callback anywhere is not an error.
func (c *Client) JobCompleted(ctx context.Context, url string, payload Completion) error {
	if url == "" {
		url = c.defaultURL
	}
	if url == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal completion: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("post completion: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("post completion %s: status %d: %s", url, resp.StatusCode, string(respBody))
	}
	return nil
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
