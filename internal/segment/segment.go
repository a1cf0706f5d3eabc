// Package segment splits extracted document text into sentence records and
// labels each with the document section it appears in.
package segment

import (
	"regexp"
	"strings"
)

// Sentence is one segmented sentence in document order. Index is 1-based.
type Sentence struct {
	Index   int    `json:"index"`
	Text    string `json:"text"`
	Section string `json:"section"`
}

// DefaultSection is assigned until a heading pattern matches.
const DefaultSection = "Unknown"

var sectionPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Abstract", regexp.MustCompile(`(?i)\babstract\b`)},
	{"Introduction", regexp.MustCompile(`(?i)\bintroduction\b`)},
	{"Methods", regexp.MustCompile(`(?i)\b(?:methods|methodology|materials\s+and\s+methods)\b`)},
	{"Results", regexp.MustCompile(`(?i)\bresults\b`)},
	{"Discussion", regexp.MustCompile(`(?i)\bdiscussion\b`)},
	{"Conclusion", regexp.MustCompile(`(?i)\bconclusion\b`)},
	{"References", regexp.MustCompile(`(?i)\breferences\b`)},
}

// Splitter produces an ordered sequence of non-empty sentence strings.
type Splitter interface {
	Split(text string) []string
}

// RegexSplitter splits on sentence-final punctuation followed by whitespace.
// It is the guaranteed fallback: segmentation must never fail the pipeline.
type RegexSplitter struct{}

var boundary = regexp.MustCompile(`([.!?])\s+`)

// Split implements Splitter. Whitespace-only input yields an empty slice.
func (RegexSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	marked := boundary.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HeuristicSplitter is the primary strategy: like RegexSplitter but it keeps
// common abbreviations and decimal numbers from ending a sentence.
type HeuristicSplitter struct{}

var abbreviations = map[string]bool{
	"dr": true, "mr": true, "mrs": true, "ms": true, "prof": true,
	"fig": true, "vs": true, "e.g": true, "i.e": true, "et al": true,
	"approx": true, "no": true, "vol": true,
}

// Split implements Splitter.
func (HeuristicSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var sentences []string
	var cur strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		cur.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(runes) || !isSpace(runes[i+1]) {
			continue
		}
		if r == '.' && breaksAbbreviation(cur.String()) {
			continue
		}
		if s := strings.TrimSpace(cur.String()); s != "" {
			sentences = append(sentences, s)
		}
		cur.Reset()
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func breaksAbbreviation(prefix string) bool {
	trimmed := strings.TrimSuffix(prefix, ".")
	idx := strings.LastIndexAny(trimmed, " \t\n\r")
	word := strings.ToLower(trimmed[idx+1:])
	if abbreviations[word] {
		return true
	}
	// "et al." spans two words.
	if strings.HasSuffix(strings.ToLower(trimmed), "et al") {
		return true
	}
	return false
}

// Split segments text with the primary splitter, falling back to the regex
// splitter if the primary fails or returns nothing for non-empty input.
func Split(primary Splitter, text string) []string {
	if primary != nil {
		if sentences := safeSplit(primary, text); len(sentences) > 0 {
			return sentences
		}
	}
	return RegexSplitter{}.Split(text)
}

func safeSplit(s Splitter, text string) (out []string) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	return s.Split(text)
}

// Sentences segments text and runs the section sweep, producing ordered
// sentence records. Empty input yields an empty slice.
func Sentences(primary Splitter, text string) []Sentence {
	raw := Split(primary, text)
	out := make([]Sentence, 0, len(raw))
	section := DefaultSection
	for i, s := range raw {
		section = DetectSection(s, section)
		out = append(out, Sentence{Index: i + 1, Text: s, Section: section})
	}
	return out
}

// DetectSection returns the section label for a sentence: the matched heading
// if any pattern hits, otherwise the previous label. Patterns are checked in
// a fixed order and the first match wins.
func DetectSection(sentence, previous string) string {
	for _, sp := range sectionPatterns {
		if sp.re.MatchString(sentence) {
			return sp.name
		}
	}
	return previous
}
