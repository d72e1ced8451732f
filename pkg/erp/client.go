// Package erp submits finished booking requests to the rental ERP. It is the
// external submission collaborator: the analysis core never imports it.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

const maxResponseSizeBytes = 1 << 20

type Config struct {
	URL     string        `split_words:"true" required:"true"`
	Token   string        `split_words:"true" required:"true"`
	Timeout time.Duration `split_words:"true" default:"15s"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// SubmitResult is the ERP's acknowledgement of a booking request.
type SubmitResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.URL)
	if baseURL == "" {
		return nil, errors.New("erp url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("erp token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   strings.TrimSpace(cfg.Token),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Submit posts a booking request document. Each call carries a fresh
// idempotency key so the ERP can deduplicate retries made by the caller.
func (c *Client) Submit(ctx context.Context, body contractx.RequestBody) (*SubmitResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal booking request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/booking-requests", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build submit request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute submit request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read submit response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("erp http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var result SubmitResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode submit response: %w", err)
	}
	return &result, nil
}
