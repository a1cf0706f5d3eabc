package scoring

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"causality-backend/internal/classifier"
)

type fixedClient struct {
	related float64
	err     error
}

func (f fixedClient) Classify(context.Context, string) (classifier.Distribution, error) {
	if f.err != nil {
		return classifier.Distribution{}, f.err
	}
	return classifier.Distribution{NotRelated: 1 - f.related, Related: f.related}, nil
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			in:   "Hearing loss secondary to bortezomib is a very rare side effect.",
			want: "hearing loss caused by bortezomib is an adverse effect.",
		},
		{
			in:   "Nausea may be related to the drug.",
			want: "nausea related to the drug.",
		},
		{
			in:   "Rash after taking amoxicillin.",
			want: "rash following amoxicillin.",
		},
		{
			in:   "An adverse reaction was reported.",
			want: "an adverse effect was reported.",
		},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDetectMarkers(t *testing.T) {
	got := DetectMarkers("Deafness secondary to cisplatin is a known side effect.")
	want := []string{"secondary to", "side effect"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DetectMarkers = %v, want %v", got, want)
	}
	if got := DetectMarkers("The patient went home."); got != nil {
		t.Fatalf("expected no markers, got %v", got)
	}
}

func TestScoreBoostFlipsDecision(t *testing.T) {
	// Two markers lift a sub-threshold 0.42 to 0.52, crossing 0.5.
	s := New(fixedClient{related: 0.42}, DefaultConfig())
	a, err := s.Score(context.Background(), "Hearing loss secondary to bortezomib is a rare side effect.")
	if err != nil {
		t.Fatal(err)
	}
	if a.Label != Related {
		t.Errorf("label = %q, want %q", a.Label, Related)
	}
	if math.Abs(a.Confidence-0.52) > 1e-9 {
		t.Errorf("confidence = %v, want 0.52", a.Confidence)
	}
	if !a.Boosted || a.MarkerCount != 2 {
		t.Errorf("boosted=%v markerCount=%d", a.Boosted, a.MarkerCount)
	}
	if a.Raw.Related != 0.42 {
		t.Errorf("raw related = %v, want 0.42", a.Raw.Related)
	}
}

func TestScoreBoostCaps(t *testing.T) {
	// Four markers would add 0.20; the boost caps at 0.15.
	text := "Toxicity caused by the drug, induced by treatment, following therapy, a side effect."
	s := New(fixedClient{related: 0.60}, DefaultConfig())
	a, err := s.Score(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	if a.MarkerCount < 4 {
		t.Fatalf("markerCount = %d, want >= 4", a.MarkerCount)
	}
	if math.Abs(a.Confidence-0.75) > 1e-9 {
		t.Errorf("confidence = %v, want 0.75", a.Confidence)
	}
}

func TestScoreBoostBelowThreshold(t *testing.T) {
	// Two markers lift 0.30 to 0.40; still below 0.5, but the boost holds.
	s := New(fixedClient{related: 0.30}, DefaultConfig())
	a, err := s.Score(context.Background(), "Hearing loss secondary to bortezomib is a rare side effect.")
	if err != nil {
		t.Fatal(err)
	}
	if a.Label != NotRelated {
		t.Errorf("label = %q, want %q", a.Label, NotRelated)
	}
	if math.Abs(a.Confidence-0.40) > 1e-9 {
		t.Errorf("confidence = %v, want 0.40", a.Confidence)
	}
	if !a.Boosted {
		t.Error("expected boosted assessment")
	}
	if a.Confidence < a.Raw.Related {
		t.Errorf("confidence %v below raw %v", a.Confidence, a.Raw.Related)
	}
}

func TestScoreConfidenceCeiling(t *testing.T) {
	s := New(fixedClient{related: 0.97}, DefaultConfig())
	a, err := s.Score(context.Background(), "Nephrotoxicity caused by cisplatin.")
	if err != nil {
		t.Fatal(err)
	}
	if a.Confidence != 0.99 {
		t.Errorf("confidence = %v, want 0.99", a.Confidence)
	}
}

func TestScoreNoMarkersNoBoost(t *testing.T) {
	s := New(fixedClient{related: 0.42}, DefaultConfig())
	a, err := s.Score(context.Background(), "The patient reported mild discomfort.")
	if err != nil {
		t.Fatal(err)
	}
	if a.Label != NotRelated || a.Confidence != 0.42 || a.Boosted {
		t.Errorf("assessment = %+v", a)
	}
}

func TestScoreBoostDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MarkerBoost = false
	s := New(fixedClient{related: 0.48}, cfg)
	a, err := s.Score(context.Background(), "Rash caused by penicillin, a side effect.")
	if err != nil {
		t.Fatal(err)
	}
	if a.Label != NotRelated || a.Confidence != 0.48 {
		t.Errorf("assessment = %+v", a)
	}
}

func TestScorePropagatesClassifierError(t *testing.T) {
	s := New(fixedClient{err: classifier.ErrUnavailable}, DefaultConfig())
	_, err := s.Score(context.Background(), "anything")
	if !errors.Is(err, classifier.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestScoreBatchOrder(t *testing.T) {
	s := New(fixedClient{related: 0.8}, DefaultConfig())
	out, err := s.ScoreBatch(context.Background(), []string{"a.", "b.", "c."})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d", len(out))
	}
}
