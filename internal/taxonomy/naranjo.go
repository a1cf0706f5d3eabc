package taxonomy

import (
	"math"
	"strings"
)

// Naranjo probability categories.
const (
	NaranjoDefinite = "Definite"
	NaranjoProbable = "Probable"
	NaranjoPossible = "Possible"
	NaranjoDoubtful = "Doubtful"
)

// Answer is a response to one Naranjo question.
type Answer int

const (
	No Answer = iota
	Yes
	Uncertain
)

// naranjoPoints are the per-question values of the ten-item Naranjo scale.
// Questions 5 and 6 (alternative causes, placebo reaction) score negative.
var naranjoPoints = [10]float64{1, 2, 1, 2, -1, -1, 1, 1, 1, 1}

// NaranjoCategory buckets a Naranjo score: >=9 Definite, 5-8 Probable,
// 1-4 Possible, otherwise Doubtful.
func NaranjoCategory(score float64) string {
	switch {
	case score >= 9:
		return NaranjoDefinite
	case score >= 5:
		return NaranjoProbable
	case score >= 1:
		return NaranjoPossible
	default:
		return NaranjoDoubtful
	}
}

// NaranjoFromConfidence derives a Naranjo-equivalent score when no
// questionnaire answers are available, by scaling the classifier confidence
// onto the 0-10 range.
func NaranjoFromConfidence(confidence float64) (int, string) {
	score := int(math.Round(confidence * 10))
	return score, NaranjoCategory(float64(score))
}

// NaranjoFromAnswers scores explicit answers to the ten questions. A yes
// earns the full point value, uncertain earns half, no earns nothing.
func NaranjoFromAnswers(answers [10]Answer) (float64, string) {
	var score float64
	for i, a := range answers {
		switch a {
		case Yes:
			score += naranjoPoints[i]
		case Uncertain:
			score += naranjoPoints[i] / 2
		}
	}
	return score, NaranjoCategory(score)
}

// cue groups for the text-derived approximation, indexed by question.
var naranjoCues = []struct {
	question int
	words    []string
}{
	{0, []string{"reported", "known", "documented", "literature"}},
	{1, []string{"after", "following", "induced", "associated with"}},
	{2, []string{"discontinuation", "withdrawal", "stopped", "ceased"}},
	{3, []string{"rechallenge", "readministration"}},
	{4, []string{"may", "possibly", "potentially", "unclear"}},
	{7, []string{"dose", "dosage", "concentration"}},
	{8, []string{"similar", "class"}},
	{9, []string{"trial", "study", "analysis", "data"}},
}

// NaranjoFromSentence approximates the questionnaire from sentence text
// alone. Questions 6 and 7 (placebo, drug levels) cannot be answered from
// prose and always score zero.
func NaranjoFromSentence(text string) (int, string) {
	lower := strings.ToLower(text)
	var score float64
	for _, cue := range naranjoCues {
		if containsAny(lower, cue.words) {
			score += naranjoPoints[cue.question]
		}
	}
	return int(score), NaranjoCategory(score)
}
