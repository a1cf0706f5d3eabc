// Package enrich pulls report counts for drug-event pairs from the openFDA
// FAERS API. Enrichment is strictly best-effort: every failure degrades to
// an empty result and the analysis proceeds without it.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"causality-backend/internal/shared/telemetry"
)

// DefaultBaseURL is the public openFDA endpoint.
const DefaultBaseURL = "https://api.fda.gov"

const defaultTimeout = 10 * time.Second

// PairSummary is the FAERS reporting history for one drug-event pair.
type PairSummary struct {
	Drug        string `json:"drug"`
	Event       string `json:"event"`
	ReportCount int    `json:"reportCount"`
}

// Client queries FAERS behind a circuit breaker so a flapping upstream cannot
// stall document analyses.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient constructs a FAERS client. Empty baseURL uses the public API;
// zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "FAERS",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			telemetry.Info("faers breaker state change", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
	}
}

type countResponse struct {
	Meta struct {
		Results struct {
			Total int `json:"total"`
		} `json:"results"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ReportCount returns the number of FAERS reports naming both the drug and
// the reaction. A 404 from openFDA means no matching reports, not an error.
func (c *Client) ReportCount(ctx context.Context, drug, event string) (int, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetchCount(ctx, drug, event)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return 0, fmt.Errorf("faers unavailable (circuit breaker open)")
		}
		return 0, err
	}
	return result.(int), nil
}

func (c *Client) fetchCount(ctx context.Context, drug, event string) (int, error) {
	q := url.Values{}
	q.Set("search", fmt.Sprintf(`patient.drug.medicinalproduct:%q AND patient.reaction.reactionmeddrapt:%q`, drug, event))
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/drug/event.json?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("faers request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("faers status %d", resp.StatusCode)
	}

	var parsed countResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("faers response parse: %w", err)
	}
	if parsed.Error != nil {
		return 0, fmt.Errorf("faers error: %s", parsed.Error.Message)
	}
	return parsed.Meta.Results.Total, nil
}

// Enrich fetches report counts for every drug-event pair. Failed pairs are
// logged and skipped; the returned slice holds only successful lookups.
func (c *Client) Enrich(ctx context.Context, drug string, events []string) []PairSummary {
	var out []PairSummary
	for _, event := range events {
		count, err := c.ReportCount(ctx, drug, event)
		if err != nil {
			telemetry.Error("faers enrichment skipped", map[string]any{
				"drug":  drug,
				"event": event,
				"error": err.Error(),
			})
			continue
		}
		out = append(out, PairSummary{Drug: drug, Event: event, ReportCount: count})
	}
	return out
}
