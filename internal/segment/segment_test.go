package segment

import (
	"reflect"
	"testing"
)

func TestRegexSplitter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic boundaries",
			text: "Rash appeared. It resolved later! Was it related?",
			want: []string{"Rash appeared.", "It resolved later!", "Was it related?"},
		},
		{
			name: "no trailing whitespace after final stop",
			text: "Single sentence.",
			want: []string{"Single sentence."},
		},
		{
			name: "whitespace only",
			text: "   \n\t ",
			want: nil,
		},
		{
			name: "collapses blank fragments",
			text: "First.   Second.",
			want: []string{"First.", "Second."},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RegexSplitter{}.Split(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Split(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestHeuristicSplitterAbbreviations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "doctor title kept inline",
			text: "Dr. Smith reviewed the case. The patient recovered.",
			want: []string{"Dr. Smith reviewed the case.", "The patient recovered."},
		},
		{
			name: "et al kept inline",
			text: "Jones et al. reported similar findings. We agree.",
			want: []string{"Jones et al. reported similar findings.", "We agree."},
		},
		{
			name: "decimal number kept inline",
			text: "The dose was 2.5 mg daily. No toxicity occurred.",
			want: []string{"The dose was 2.5 mg daily.", "No toxicity occurred."},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := HeuristicSplitter{}.Split(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Split(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

type panicSplitter struct{}

func (panicSplitter) Split(string) []string { panic("boom") }

type emptySplitter struct{}

func (emptySplitter) Split(string) []string { return nil }

func TestSplitFallback(t *testing.T) {
	text := "First sentence. Second sentence."
	want := []string{"First sentence.", "Second sentence."}

	if got := Split(panicSplitter{}, text); !reflect.DeepEqual(got, want) {
		t.Errorf("panic fallback = %v, want %v", got, want)
	}
	if got := Split(emptySplitter{}, text); !reflect.DeepEqual(got, want) {
		t.Errorf("empty fallback = %v, want %v", got, want)
	}
	if got := Split(nil, text); !reflect.DeepEqual(got, want) {
		t.Errorf("nil primary = %v, want %v", got, want)
	}
}

func TestSentencesSectionSweep(t *testing.T) {
	text := "Abstract. We studied ototoxicity. Methods were standard. Samples were assayed. Results showed hearing loss."
	got := Sentences(HeuristicSplitter{}, text)

	wantSections := []string{"Abstract", "Abstract", "Methods", "Methods", "Results"}
	if len(got) != len(wantSections) {
		t.Fatalf("got %d sentences, want %d: %+v", len(got), len(wantSections), got)
	}
	for i, s := range got {
		if s.Index != i+1 {
			t.Errorf("sentence %d has index %d", i, s.Index)
		}
		if s.Section != wantSections[i] {
			t.Errorf("sentence %d section = %q, want %q", i, s.Section, wantSections[i])
		}
	}
}

func TestSentencesEmpty(t *testing.T) {
	if got := Sentences(HeuristicSplitter{}, ""); len(got) != 0 {
		t.Errorf("Sentences(\"\") = %+v, want empty", got)
	}
}

func TestDetectSectionCarriesPrevious(t *testing.T) {
	if got := DetectSection("No heading here", "Discussion"); got != "Discussion" {
		t.Errorf("got %q, want Discussion", got)
	}
	if got := DetectSection("In conclusion, the drug is implicated", "Results"); got != "Conclusion" {
		t.Errorf("got %q, want Conclusion", got)
	}
}
