package taxonomy

import "testing"

func TestWHOUMCFromConfidence(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		sentence   string
		want       string
	}{
		{"certain with confirmation", 0.995, "The association was confirmed by rechallenge.", WHOUMCCertain},
		{"high confidence without confirmation falls through", 0.995, "Deafness was induced by cisplatin.", WHOUMCProbable},
		{"probable with association marker", 0.96, "Neuropathy associated with bortezomib.", WHOUMCProbable},
		{"possible with hedge", 0.85, "The rash may reflect drug hypersensitivity.", WHOUMCPossible},
		{"high confidence without any marker", 0.85, "The rash worsened overnight.", WHOUMCUnlikely},
		{"unlikely band", 0.65, "No comment.", WHOUMCUnlikely},
		{"conditional band", 0.55, "No comment.", WHOUMCConditional},
		{"unassessable", 0.30, "No comment.", WHOUMCUnassessable},
		{"boundary 0.50 is unassessable", 0.50, "No comment.", WHOUMCUnassessable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WHOUMCFromConfidence(tc.confidence, tc.sentence); got != tc.want {
				t.Errorf("WHOUMCFromConfidence(%v, %q) = %q, want %q", tc.confidence, tc.sentence, got, tc.want)
			}
		})
	}
}

func TestWHOUMCFromEvidence(t *testing.T) {
	tests := []struct {
		name      string
		ev        Evidence
		wantScore int
		wantCat   string
	}{
		{
			name:      "full evidence",
			ev:        Evidence{TemporalRelationship: true, DoseResponse: true, Dechallenge: true, Rechallenge: true},
			wantScore: 9,
			wantCat:   WHOUMCCertain,
		},
		{
			name:      "temporal and dose only",
			ev:        Evidence{TemporalRelationship: true, DoseResponse: true, AlternativeCauses: true},
			wantScore: 5,
			wantCat:   WHOUMCPossible,
		},
		{
			name:      "no flags still credits absent alternatives",
			ev:        Evidence{},
			wantScore: 2,
			wantCat:   WHOUMCUnlikely,
		},
		{
			name:      "alternative causes alone",
			ev:        Evidence{AlternativeCauses: true},
			wantScore: 0,
			wantCat:   WHOUMCUnrelated,
		},
		{
			name:      "temporal plus clean history is probable",
			ev:        Evidence{TemporalRelationship: true, Dechallenge: true},
			wantScore: 6,
			wantCat:   WHOUMCProbable,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, cat := WHOUMCFromEvidence(tc.ev)
			if score != tc.wantScore || cat != tc.wantCat {
				t.Errorf("WHOUMCFromEvidence(%+v) = (%d, %q), want (%d, %q)", tc.ev, score, cat, tc.wantScore, tc.wantCat)
			}
		})
	}
}

func TestNaranjoFromConfidence(t *testing.T) {
	tests := []struct {
		confidence float64
		wantScore  int
		wantCat    string
	}{
		{0.92, 9, NaranjoDefinite},
		{0.84, 8, NaranjoProbable},
		{0.50, 5, NaranjoProbable},
		{0.44, 4, NaranjoPossible},
		{0.10, 1, NaranjoPossible},
		{0.04, 0, NaranjoDoubtful},
	}
	for _, tc := range tests {
		score, cat := NaranjoFromConfidence(tc.confidence)
		if score != tc.wantScore || cat != tc.wantCat {
			t.Errorf("NaranjoFromConfidence(%v) = (%d, %q), want (%d, %q)", tc.confidence, score, cat, tc.wantScore, tc.wantCat)
		}
	}
}

func TestNaranjoFromAnswers(t *testing.T) {
	var all [10]Answer
	for i := range all {
		all[i] = Yes
	}
	// Two of the ten questions score -1 on yes, so all-yes sums to 8.
	score, cat := NaranjoFromAnswers(all)
	if score != 8 || cat != NaranjoProbable {
		t.Errorf("all yes = (%v, %q), want (8, Probable)", score, cat)
	}

	var mixed [10]Answer
	mixed[1] = Yes       // onset after drug, +2
	mixed[2] = Uncertain // improvement on withdrawal, +0.5
	mixed[4] = Yes       // alternative causes, -1
	score, cat = NaranjoFromAnswers(mixed)
	if score != 1.5 || cat != NaranjoPossible {
		t.Errorf("mixed = (%v, %q), want (1.5, Possible)", score, cat)
	}

	var none [10]Answer
	score, cat = NaranjoFromAnswers(none)
	if score != 0 || cat != NaranjoDoubtful {
		t.Errorf("all no = (%v, %q), want (0, Doubtful)", score, cat)
	}
}

func TestNaranjoFromSentence(t *testing.T) {
	score, cat := NaranjoFromSentence(
		"A documented case of neuropathy following bortezomib, improving after the drug was stopped, with a clear dose relationship reported in the study data.")
	// cues: documented/reported +1, following +2, stopped +1, dose +1, study/data +1
	if score != 6 || cat != NaranjoProbable {
		t.Errorf("got (%d, %q), want (6, Probable)", score, cat)
	}

	score, cat = NaranjoFromSentence("The patient was discharged in good condition.")
	if score != 0 || cat != NaranjoDoubtful {
		t.Errorf("got (%d, %q), want (0, Doubtful)", score, cat)
	}
}
