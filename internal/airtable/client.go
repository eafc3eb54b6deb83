// Package airtable implements the record-persistence collaborator: an
// append-only key/value store reached over the Airtable REST API.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the Airtable REST endpoint.
const DefaultBaseURL = "https://api.airtable.com/v0"

// Client talks to a single Airtable base with bearer auth. The API
// key and base ID are injected; this package never reads the
// environment.
type Client struct {
	apiKey  string
	baseID  string
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates an Airtable client for one base.
func NewClient(apiKey, baseID string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("airtable API key is required")
	}
	if baseID == "" {
		return nil, fmt.Errorf("airtable base ID is required")
	}

	c := &Client{
		apiKey:  apiKey,
		baseID:  baseID,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// createRequest is the Airtable record-creation payload.
type createRequest struct {
	Fields map[string]any `json:"fields"`
}

// CreateRecord appends one record with the given fields to a table.
// Failure returns a *PersistenceError; callers log it and continue,
// since persistence must never block artifact delivery.
func (c *Client) CreateRecord(ctx context.Context, tableID string, fields map[string]any) error {
	if tableID == "" {
		return &PersistenceError{Message: "table ID is required"}
	}

	body, err := json.Marshal(createRequest{Fields: fields})
	if err != nil {
		return &PersistenceError{Message: "failed to encode record", Cause: err}
	}

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.baseID, tableID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &PersistenceError{Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &PersistenceError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &PersistenceError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("create record in table %s: %s", tableID, string(detail)),
		}
	}

	return nil
}
