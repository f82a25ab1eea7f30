// Package lili provides the client for Lili's website-chat endpoint. The
// upstream is strictly non-streaming: one POST per request, one complete
// answer back. Streaming toward callers is emulated elsewhere on top of
// this single answer.
package lili

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/davidbz/lilibridge/internal/domain"
	"github.com/davidbz/lilibridge/internal/observability"
)

const chatPath = "/user-scope/website-chat/"

// Client implements domain.UpstreamClient for the Lili backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// NewClient builds a client from config. metrics may be nil.
func NewClient(cfg Config, metrics *observability.Metrics) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("Lili base URL is required")
	}

	var timeout time.Duration
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	return &Client{
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + chatPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
	}, nil
}

// Endpoint returns the resolved website-chat URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts the payload and returns the trimmed answer text. The answer is
// taken from the body's "message" field, falling back to its "error" field
// when "message" is absent; the fallback is passed through as assistant
// content on purpose, matching the upstream's contract.
func (c *Client) Send(ctx context.Context, payload *domain.UpstreamPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger := observability.FromContext(ctx)
	logger.Debug("calling Lili", observability.String("endpoint", c.endpoint))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveUpstream(time.Since(start), err)
	if err != nil {
		return "", &domain.UpstreamUnreachableError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.UpstreamUnreachableError{Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &domain.UpstreamStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	if !gjson.ValidBytes(raw) {
		return "", &domain.UpstreamBadResponseError{Body: string(raw)}
	}

	text := gjson.GetBytes(raw, "message").String()
	if text == "" {
		text = gjson.GetBytes(raw, "error").String()
	}

	return strings.TrimSpace(text), nil
}
