// Package infer talks to the BERT inference sidecar over HTTP.
package infer

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

	"causality-backend/internal/classifier"
)

const defaultTimeout = 15 * time.Second

// Client implements classifier.Client against the sidecar's /classify route.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a sidecar client. baseURL must be non-empty; a zero
// timeout falls back to the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("CLASSIFIER_URL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Probabilities struct {
		NotRelated float64 `json:"not_related"`
		Related    float64 `json:"related"`
	} `json:"probabilities"`
	Error string `json:"error,omitempty"`
}

// Classify implements classifier.Client. Transport failures and 5xx
// responses are reported as classifier.ErrUnavailable so callers can
// degrade instead of failing the whole document.
func (c *Client) Classify(ctx context.Context, text string) (classifier.Distribution, error) {
	payload, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return classifier.Distribution{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(payload))
	if err != nil {
		return classifier.Distribution{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return classifier.Distribution{}, fmt.Errorf("inference request timeout: %w", classifier.ErrUnavailable)
		}
		return classifier.Distribution{}, fmt.Errorf("inference request: %v: %w", err, classifier.ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifier.Distribution{}, err
	}
	if resp.StatusCode >= 500 {
		return classifier.Distribution{}, fmt.Errorf("inference status %d: %w", resp.StatusCode, classifier.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return classifier.Distribution{}, fmt.Errorf("inference status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed classifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return classifier.Distribution{}, fmt.Errorf("inference response parse: %w", err)
	}
	if parsed.Error != "" {
		return classifier.Distribution{}, fmt.Errorf("inference error: %s", parsed.Error)
	}
	return classifier.Distribution{
		NotRelated: parsed.Probabilities.NotRelated,
		Related:    parsed.Probabilities.Related,
	}, nil
}
