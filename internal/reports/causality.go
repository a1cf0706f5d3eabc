package reports

import (
	"fmt"
	"strings"

	"causality-backend/internal/entities"
	"causality-backend/internal/taxonomy"
)

// Causality renders the regulatory causality assessment report: one scored
// block per drug-event pair with WHO-UMC and Naranjo labels and the matching
// regulatory language.
func Causality(c DrugCase) string {
	var b strings.Builder

	b.WriteString("REGULATORY CAUSALITY ASSESSMENT REPORT\n")
	b.WriteString(rule() + "\n\n")

	fmt.Fprintf(&b, "Medicinal Product: %s\n", c.drugLabel())
	fmt.Fprintf(&b, "Source Document: %s\n", sourceOr(c.Source))
	fmt.Fprintf(&b, "Assessment Date: %s\n", c.Date.Format("02 January 2006"))
	b.WriteString("Guidelines: FDA, EMA, WHO-UMC\n\n")
	b.WriteString(thinRule() + "\n\n")

	if c.Drug == "" {
		b.WriteString("No drugs identified in the document.\n")
		b.WriteString("Causality assessment cannot be performed without a suspect drug.\n")
		return b.String()
	}
	if len(c.Events) == 0 {
		b.WriteString("No adverse events identified for this drug.\n")
		b.WriteString("No drug-event pairs to assess.\n")
		return b.String()
	}

	top := topFinding(c.Findings)
	classification := assessNotRelated
	if c.RelatedCount > 0 {
		classification = assessRelated
	}

	for i, event := range c.Events {
		fmt.Fprintf(&b, "DRUG-EVENT PAIR %d\n", i+1)
		fmt.Fprintf(&b, "Drug: %s\n", titleWords(c.Drug))
		fmt.Fprintf(&b, "Adverse Event: %s (%s)\n", entities.Standardize(event), event)
		fmt.Fprintf(&b, "Classification: %s\n", strings.ToUpper(classification))
		fmt.Fprintf(&b, "Confidence: %s\n", pct(c.MaxConfidence))

		who := taxonomy.WHOUMCFromConfidence(c.MaxConfidence, top.Text)
		naranjoScore, naranjoCat := taxonomy.NaranjoFromSentence(top.Text)
		fmt.Fprintf(&b, "WHO-UMC Category: %s\n", who)
		fmt.Fprintf(&b, "Naranjo Score: %d (%s)\n\n", naranjoScore, naranjoCat)

		fmt.Fprintf(&b, "Causality Statement: %s.\n", CausalityStatement(who, c.MaxConfidence))
		fmt.Fprintf(&b, "Regulatory Recommendation: %s.\n\n", RegulatoryRecommendation(classification, c.MaxConfidence, false))
		b.WriteString(thinRule() + "\n\n")
	}

	b.WriteString("SUPPORTING EVIDENCE\n\n")
	if len(c.Findings) == 0 {
		b.WriteString("No sentences were classified as related for this drug.\n")
	} else {
		for i, f := range c.Findings {
			fmt.Fprintf(&b, "%d. %s\n", i+1, truncate(f.Text, 200))
			fmt.Fprintf(&b, "   (Confidence: %s)\n\n", pct(f.Confidence))
		}
	}

	b.WriteString(rule() + "\n")
	fmt.Fprintf(&b, "Sentences mentioning drug: %d | Classified related: %d\n", c.TotalSentences, c.RelatedCount)
	b.WriteString(rule() + "\n")
	return b.String()
}

func topFinding(findings []Finding) Finding {
	var top Finding
	for _, f := range findings {
		if f.Confidence > top.Confidence {
			top = f
		}
	}
	return top
}

func sourceOr(source string) string {
	if source == "" {
		return "Not specified"
	}
	return source
}
