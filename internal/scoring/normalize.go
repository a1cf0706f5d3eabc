package scoring

import "strings"

// substitutions rewrite hedged or variant causality phrasing into the
// canonical forms the model was trained on. Applied sequentially, so earlier
// rewrites feed later ones; order matters and must not be shuffled.
var substitutions = []struct {
	old string
	new string
}{
	// strong causality markers
	{"secondary to", "caused by"},
	{"due to", "caused by"},
	{"induced by", "caused by"},
	{"associated with", "related to"},

	// side effect terminology
	{"is a very rare side effect of", "is an adverse effect of"},
	{"is a very rare side effect", "is an adverse effect"},
	{"is a rare side effect of", "is an adverse effect of"},
	{"is a rare side effect", "is an adverse effect"},
	{"is a common side effect of", "is an adverse effect of"},
	{"is a common side effect", "is an adverse effect"},
	{"is a side effect of", "is an adverse effect of"},
	{"is a side effect", "is an adverse effect"},
	{"a side effect of", "an adverse effect of"},
	{"a side effect", "an adverse effect"},
	{"side effect of", "adverse effect of"},
	{"side effects of", "adverse effects of"},

	// hedging language
	{"may be related to", "related to"},
	{"may be associated with", "related to"},
	{"possibly related to", "related to"},
	{"possibly associated with", "related to"},
	{"likely related to", "related to"},
	{"likely associated with", "related to"},
	{"could be related to", "related to"},
	{"could be associated with", "related to"},

	// temporal indicators
	{"after taking", "following"},
	{"following administration of", "following"},
	{"following treatment with", "following"},
	{"after administration of", "following"},
	{"upon taking", "following"},

	// adverse event terminology
	{"adverse reaction", "adverse effect"},
	{"adverse event", "adverse effect"},
	{"adr", "adverse effect"},
	{"untoward effect", "adverse effect"},
}

// Normalize lowercases text and applies the substitution chain. The result
// is what gets sent to the model; marker detection runs on the original text.
func Normalize(text string) string {
	out := strings.ToLower(text)
	for _, s := range substitutions {
		out = strings.ReplaceAll(out, s.old, s.new)
	}
	return out
}
