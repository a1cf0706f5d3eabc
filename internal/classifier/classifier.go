// Package classifier defines the two-class relatedness model interface and a
// lexical fallback used when no inference backend is reachable.
package classifier

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable reports that the inference backend cannot be reached.
// Callers decide whether to fail the request or degrade to the fallback.
var ErrUnavailable = errors.New("classifier unavailable")

// Distribution is the softmax output of the relatedness model. The two
// probabilities sum to 1.
type Distribution struct {
	NotRelated float64 `json:"not_related"`
	Related    float64 `json:"related"`
}

// Client scores a single sentence for drug-event relatedness.
type Client interface {
	Classify(ctx context.Context, text string) (Distribution, error)
}

// Fallback is a lexical stand-in for the trained model. It scores by causal
// keyword density so the pipeline stays usable when the inference service is
// down, at reduced accuracy.
type Fallback struct{}

var fallbackCues = []string{
	"caused by", "induced by", "secondary to", "due to", "following",
	"adverse", "side effect", "toxicity", "related to", "associated with",
}

// Classify implements Client. It never returns an error.
func (Fallback) Classify(_ context.Context, text string) (Distribution, error) {
	lower := strings.ToLower(text)
	hits := 0
	for _, cue := range fallbackCues {
		if strings.Contains(lower, cue) {
			hits++
		}
	}
	related := 0.25 + 0.15*float64(hits)
	if related > 0.9 {
		related = 0.9
	}
	return Distribution{NotRelated: 1 - related, Related: related}, nil
}
