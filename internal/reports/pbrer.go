package reports

import (
	"fmt"
	"strings"

	"causality-backend/internal/entities"
)

// PBRERSection11 renders the Section 11 company comment. The section order
// is fixed: Executive Summary, Assessment of Causality, Safety Profile,
// Risk-Benefit, Recommendations, Conclusion.
func PBRERSection11(c DrugCase) string {
	var b strings.Builder

	b.WriteString(rule() + "\n")
	b.WriteString("COMPANY COMMENT - PBRER SECTION 11 FORMAT\n")
	b.WriteString(rule() + "\n\n")

	fmt.Fprintf(&b, "Medicinal Product: %s\n", c.drugLabel())
	fmt.Fprintf(&b, "Source Document: %s\n", sourceOr(c.Source))
	fmt.Fprintf(&b, "Assessment Date: %s\n", c.Date.Format("02 January 2006"))
	b.WriteString("Reporting Period: As documented in source\n\n")

	assessment := c.overallAssessment()

	b.WriteString("EXECUTIVE SUMMARY\n")
	b.WriteString(thinRule() + "\n")
	if c.RelatedCount > 0 {
		fmt.Fprintf(&b, "This document describes %d instance(s) of potential adverse events associated with %s.\n",
			c.RelatedCount, c.drugLabel())
		if len(c.Events) > 0 {
			fmt.Fprintf(&b, "The reported adverse event(s) include: %s.\n", strings.Join(c.Events, ", "))
		}
		if onsets := uniqueMatches(c.Factors.TimeToOnset, 1); len(onsets) > 0 {
			fmt.Fprintf(&b, "Time to onset was reported as %s.\n", onsets[0])
		}
		if outcomes := uniqueMatches(c.Factors.ClinicalOutcomes, 1); len(outcomes) > 0 {
			fmt.Fprintf(&b, "Clinical outcome: %s.\n", outcomes[0])
		}
	} else {
		fmt.Fprintf(&b, "This document mentions %s in %d instance(s), however, no clear causality relationship\n",
			c.drugLabel(), c.TotalSentences)
		b.WriteString("with adverse events was identified based on the automated analysis.\n")
	}
	b.WriteString("\n")

	b.WriteString("ASSESSMENT OF CAUSALITY\n")
	b.WriteString(thinRule() + "\n")
	fmt.Fprintf(&b, "Based on the available information and automated causality analysis (confidence: %s),\n", pct(c.MaxConfidence))
	fmt.Fprintf(&b, "a causal relationship between %s and the reported adverse event(s) is considered %s.\n\n",
		c.drugLabel(), strings.ToUpper(assessment))
	b.WriteString("Rationale:\n")
	for _, r := range pbrerRationale(c, assessment) {
		fmt.Fprintf(&b, "  - %s\n", r)
	}
	b.WriteString("\n")

	b.WriteString("SAFETY PROFILE\n")
	b.WriteString(thinRule() + "\n")
	writeFactorList(&b, "Concomitant Medications", c.Factors.ConcomitantMedications, "Not specifically mentioned in the document.")
	writeFactorList(&b, "Time to Onset", c.Factors.TimeToOnset, "Not specified in the document.")
	writeFactorList(&b, "Concurrent Conditions", c.Factors.ConcurrentConditions, "Not specifically mentioned.")
	writeFactorList(&b, "Dose Information", c.Factors.DoseInformation, "Not documented.")
	writeFactorList(&b, "Patient Demographics", c.Factors.PatientDemographics, "Not documented.")
	writeFactorList(&b, "Clinical Outcomes", c.Factors.ClinicalOutcomes, "Not documented.")
	if len(c.Factors.DechallengeRechallenge) > 0 {
		b.WriteString("Dechallenge/Rechallenge: Evidence of dechallenge/rechallenge mentioned in document.\n")
	} else {
		b.WriteString("Dechallenge/Rechallenge: No dechallenge/rechallenge data available.\n")
	}
	b.WriteString("\n")

	b.WriteString("RISK-BENEFIT CONSIDERATIONS\n")
	b.WriteString(thinRule() + "\n")
	confounders := false
	if n := len(c.Factors.ConcomitantMedications); n > 0 {
		fmt.Fprintf(&b, "  - Concomitant medications: %d reference(s)\n", n)
		confounders = true
	}
	if n := len(c.Factors.ConcurrentConditions); n > 0 {
		fmt.Fprintf(&b, "  - Concurrent medical conditions: %d reference(s)\n", n)
		confounders = true
	}
	if n := len(c.Factors.ConfoundingFactors); n > 0 {
		fmt.Fprintf(&b, "  - Other confounding factors: %d identified\n", n)
		confounders = true
	}
	if !confounders {
		b.WriteString("  - No specific confounding factors explicitly mentioned in the document\n")
		b.WriteString("  - However, absence of information does not exclude potential confounders\n")
	}
	b.WriteString("\n")

	b.WriteString("RECOMMENDATIONS\n")
	b.WriteString(thinRule() + "\n")
	for _, r := range pbrerActions(assessment) {
		fmt.Fprintf(&b, "  - %s\n", r)
	}
	b.WriteString("\n")

	b.WriteString("CONCLUSION\n")
	b.WriteString(thinRule() + "\n")
	switch assessment {
	case assessRelated:
		fmt.Fprintf(&b, "This case/literature supports a causal association between %s and the reported adverse event(s).\n", c.drugLabel())
	case assessPossibly:
		b.WriteString("While a causal relationship cannot be definitively established, the possibility of an\n")
		fmt.Fprintf(&b, "association between %s and the reported event(s) cannot be excluded.\n", c.drugLabel())
	default:
		fmt.Fprintf(&b, "Based on current evidence, a causal relationship between %s and adverse events is\n", c.drugLabel())
		b.WriteString("considered unlikely. However, continued monitoring is recommended as part of routine\n")
		b.WriteString("pharmacovigilance activities.\n")
	}
	b.WriteString("\n" + rule() + "\n")
	fmt.Fprintf(&b, "Assessment Date: %s\n", c.Date.Format("02 January 2006"))
	b.WriteString(rule() + "\n")
	return b.String()
}

func pbrerRationale(c DrugCase, assessment string) []string {
	switch assessment {
	case assessRelated:
		out := []string{
			fmt.Sprintf("Temporal association documented (%d reference(s))", len(c.Factors.TimeToOnset)),
			fmt.Sprintf("Causality confidence score: %s", pct(c.MaxConfidence)),
		}
		if len(c.Factors.DechallengeRechallenge) > 0 {
			out = append(out, "Dechallenge/rechallenge data available")
		}
		if len(c.Factors.MechanismInformation) > 0 {
			out = append(out, "Biological plausibility supported by documented mechanism")
		}
		return append(out, fmt.Sprintf("Number of related statements: %d/%d", c.RelatedCount, c.TotalSentences))
	case assessPossibly:
		out := []string{
			fmt.Sprintf("Moderate evidence of causality (confidence: %s)", pct(c.MaxConfidence)),
			fmt.Sprintf("%d of %d statements suggest potential association", c.RelatedCount, c.TotalSentences),
		}
		if n := len(c.Factors.ConfoundingFactors); n > 0 {
			out = append(out, fmt.Sprintf("%d potential confounding factor(s) identified", n))
		}
		if len(c.Factors.DechallengeRechallenge) == 0 {
			out = append(out, "Limited dechallenge/rechallenge information")
		}
		return out
	default:
		out := []string{
			fmt.Sprintf("Low causality confidence score: %s", pct(c.MaxConfidence)),
			fmt.Sprintf("Limited evidence in document (%d/%d statements)", c.RelatedCount, c.TotalSentences),
		}
		if len(c.Factors.ConfoundingFactors) > 0 {
			out = append(out, "Alternative explanations identified")
		}
		return out
	}
}

func pbrerActions(assessment string) []string {
	switch assessment {
	case assessRelated:
		return []string{
			"Include in cumulative review for next PSUR",
			"Evaluate need for product information update",
			"Consider for signal detection analysis",
			"Continue pharmacovigilance monitoring",
		}
	case assessPossibly:
		return []string{
			"Include in routine pharmacovigilance monitoring",
			"Document in periodic safety reports",
			"Seek additional cases for cumulative review",
			"No immediate regulatory action required",
		}
	default:
		return []string{
			"Continue routine pharmacovigilance",
			"Document in periodic safety reports",
			"No specific regulatory action required at this time",
		}
	}
}

func writeFactorList(b *strings.Builder, label string, matches []entities.ContextMatch, placeholder string) {
	items := uniqueMatches(matches, 5)
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: %s\n", label, placeholder)
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, "; "))
}
