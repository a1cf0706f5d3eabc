// Package scoring turns model probabilities into causality verdicts. The
// pipeline per sentence is marker detection, optional normalization, model
// inference, optional marker boost, then the threshold decision.
package scoring

import (
	"context"
	"fmt"

	"causality-backend/internal/classifier"
)

// Labels assigned to scored sentences.
const (
	Related    = "related"
	NotRelated = "not related"
)

const (
	// DefaultThreshold is the related-probability cutoff.
	DefaultThreshold = 0.5

	boostPerMarker = 0.05
	boostCap       = 0.15
	confidenceCap  = 0.99
)

// Config controls the scoring pipeline. The zero value disables everything;
// use DefaultConfig for production settings.
type Config struct {
	Threshold   float64
	MarkerBoost bool
	Preprocess  bool
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, MarkerBoost: true, Preprocess: true}
}

// Assessment is the verdict for one sentence. Confidence is the related
// probability after any boost; Raw preserves the model output.
type Assessment struct {
	Label       string                  `json:"prediction"`
	Confidence  float64                 `json:"confidence"`
	Raw         classifier.Distribution `json:"probabilities"`
	Markers     []string                `json:"markersFound,omitempty"`
	MarkerCount int                     `json:"markerCount"`
	Boosted     bool                    `json:"boosted"`
}

// Scorer scores sentences using a classifier client.
type Scorer struct {
	cfg    Config
	client classifier.Client
}

// New returns a Scorer over client with the given config.
func New(client classifier.Client, cfg Config) *Scorer {
	return &Scorer{cfg: cfg, client: client}
}

// Score assesses a single sentence. A classifier error fails the call; the
// caller owns the fallback decision.
func (s *Scorer) Score(ctx context.Context, text string) (Assessment, error) {
	markers := DetectMarkers(text)

	input := text
	if s.cfg.Preprocess {
		input = Normalize(text)
	}

	dist, err := s.client.Classify(ctx, input)
	if err != nil {
		return Assessment{}, fmt.Errorf("classify: %w", err)
	}

	return s.decide(dist, markers), nil
}

// ScoreBatch assesses sentences in order, stopping at the first error.
func (s *Scorer) ScoreBatch(ctx context.Context, texts []string) ([]Assessment, error) {
	out := make([]Assessment, 0, len(texts))
	for _, t := range texts {
		a, err := s.Score(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// decide applies the marker boost and threshold to a model distribution.
// The boost is min(0.15, 0.05 per marker), applied whenever markers are
// present; the boosted score is capped at 0.99 and the threshold decision
// runs on the boosted score.
func (s *Scorer) decide(dist classifier.Distribution, markers []string) Assessment {
	score := dist.Related
	boosted := false

	if s.cfg.MarkerBoost && len(markers) > 0 {
		boost := boostPerMarker * float64(len(markers))
		if boost > boostCap {
			boost = boostCap
		}
		enhanced := score + boost
		if enhanced > confidenceCap {
			enhanced = confidenceCap
		}
		if enhanced != score {
			boosted = true
		}
		score = enhanced
	}

	label := NotRelated
	if score > s.cfg.Threshold {
		label = Related
	}
	return Assessment{
		Label:       label,
		Confidence:  score,
		Raw:         dist,
		Markers:     markers,
		MarkerCount: len(markers),
		Boosted:     boosted,
	}
}
