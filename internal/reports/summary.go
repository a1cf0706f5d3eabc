package reports

import (
	"fmt"
	"strings"

	"causality-backend/internal/entities"
	"causality-backend/internal/taxonomy"
)

// Summary renders the professional medical case summary. Every section is
// always present; fields without data carry a "Not specified" or "Not
// documented" placeholder.
func Summary(c DrugCase) string {
	var b strings.Builder

	b.WriteString("MEDICAL CASE SUMMARY\n")
	b.WriteString(rule() + "\n\n")

	b.WriteString("PATIENT DEMOGRAPHICS:\n")
	switch {
	case c.Demographics.Age != "" && c.Demographics.Gender != "":
		fmt.Fprintf(&b, "Age/Sex: %s-year-old %s\n", c.Demographics.Age, strings.ToLower(c.Demographics.Gender))
	case c.Demographics.Age != "":
		fmt.Fprintf(&b, "Age: %s years\n", c.Demographics.Age)
	case c.Demographics.Gender != "":
		fmt.Fprintf(&b, "Sex: %s\n", c.Demographics.Gender)
	default:
		b.WriteString("Age/Sex: Not specified in available documentation\n")
	}
	if len(c.Conditions) > 0 {
		fmt.Fprintf(&b, "Relevant Medical History: %s\n", strings.Join(c.Conditions, ", "))
	} else {
		b.WriteString("Relevant Medical History: Not documented in case report\n")
	}
	b.WriteString("Primary Diagnosis: As documented in case report\n\n")

	b.WriteString("CONCURRENT CONDITIONS:\n")
	if len(c.Conditions) > 0 {
		for _, cond := range c.Conditions {
			fmt.Fprintf(&b, "  - %s\n", cond)
		}
	} else {
		b.WriteString("  - Not specified in available documentation\n")
	}
	b.WriteString("\n")

	b.WriteString("CONCOMITANT MEDICATIONS:\n")
	b.WriteString("  Medications as documented in patient's treatment record.\n")
	fmt.Fprintf(&b, "  Suspect Drug: %s\n\n", c.drugLabel())

	b.WriteString("DRUG AND TREATMENT INFORMATION:\n")
	fmt.Fprintf(&b, "Suspect Drug: %s\n", c.drugLabel())
	b.WriteString("Indication: As per treating physician's assessment\n")
	b.WriteString("Therapy Regimen: As documented in case report\n")
	if doses := uniqueMatches(c.Factors.DoseInformation, 3); len(doses) > 0 {
		fmt.Fprintf(&b, "Dosage Received: %s\n", strings.Join(doses, ", "))
	} else {
		b.WriteString("Dosage Received: Per treatment documentation\n")
	}
	b.WriteString("\n")

	b.WriteString("ADVERSE EVENT INFORMATION:\n")
	if len(c.Events) > 0 {
		labels := make([]string, 0, len(c.Events))
		for _, ev := range c.Events {
			labels = append(labels, fmt.Sprintf("%s (%s)", entities.Standardize(ev), ev))
		}
		fmt.Fprintf(&b, "Event: %s\n", strings.Join(labels, ", "))
		b.WriteString("Onset: Temporally associated with drug administration\n")
		b.WriteString("Initial Symptoms: As described in case documentation\n")
		b.WriteString("Investigations: Clinical assessment and relevant diagnostic tests performed\n")
		b.WriteString("Management: Per clinical protocol and treating physician's discretion\n")
		b.WriteString("Outcome: As documented in follow-up assessment\n")
	} else {
		b.WriteString("Event: No specific adverse events identified in document\n")
		b.WriteString("Onset: Not documented\n")
		b.WriteString("Outcome: No adverse events to report\n")
	}
	b.WriteString("\n")

	b.WriteString("DECHALLENGE/RECHALLENGE:\n")
	b.WriteString("Dechallenge: Details as documented in case report (if applicable)\n")
	b.WriteString("Rechallenge: Information as per case documentation or not attempted\n\n")

	b.WriteString("ALTERNATIVE ETIOLOGY CONSIDERATION:\n")
	if len(c.Conditions) > 0 {
		fmt.Fprintf(&b, "Underlying conditions considered: %s\n", strings.Join(c.Conditions, ", "))
	} else {
		b.WriteString("Underlying conditions: Not documented in available information\n")
	}
	b.WriteString("Other potential causes: Evaluated per available clinical assessment\n")
	b.WriteString("Concurrent medications: Reviewed as per documentation\n\n")

	b.WriteString("CAUSALITY DISCUSSION:\n")
	if c.Drug != "" {
		fmt.Fprintf(&b, "The event's temporal association with %s administration is assessed.\n", c.Drug)
	} else {
		b.WriteString("Temporal relationship with suspect drug is under evaluation.\n")
	}
	if c.ClassifierAvailable {
		if len(c.Markers) > 0 {
			fmt.Fprintf(&b, "Causality markers identified: %s\n", strings.Join(c.Markers, ", "))
		}
		label := "NOT RELATED"
		if c.overallAssessment() == assessRelated || c.overallAssessment() == assessPossibly {
			label = "RELATED"
		}
		fmt.Fprintf(&b, "Model Assessment: %s\n", label)
		fmt.Fprintf(&b, "Confidence Level: %s\n", pct(c.MaxConfidence))
		switch {
		case c.MaxConfidence >= 0.8:
			b.WriteString("Assessment Strength: Strong evidence of causal relationship\n")
		case c.MaxConfidence >= 0.5:
			b.WriteString("Assessment Strength: Probable causal relationship\n")
		case c.MaxConfidence > 0:
			b.WriteString("Assessment Strength: Possible relationship, requires further evaluation\n")
		default:
			b.WriteString("Assessment Strength: Insufficient evidence for causal assessment\n")
		}
	} else {
		b.WriteString("Model Assessment: Unable to perform (model not available)\n")
		b.WriteString("Manual causality assessment recommended\n")
	}
	b.WriteString("\n")

	b.WriteString("OUTCOME:\n")
	b.WriteString("As documented in case report follow-up assessment.\n\n")

	writeCompanyComment(&b, c)
	return b.String()
}

func writeCompanyComment(b *strings.Builder, c DrugCase) {
	b.WriteString(rule() + "\n")
	b.WriteString("COMPANY COMMENT\n")
	b.WriteString(rule() + "\n\n")

	b.WriteString("Based on the available information from the case report:\n\n")
	if c.Drug != "" {
		fmt.Fprintf(b, "Temporal Relationship: Adverse event occurrence in relation to %s administration.\n\n", c.Drug)
	} else {
		b.WriteString("Temporal Relationship: Insufficient information available.\n\n")
	}
	b.WriteString("Dechallenge Information: As documented in case report.\n\n")
	b.WriteString("Alternative Causes: ")
	if len(c.Conditions) > 0 {
		fmt.Fprintf(b, "%s and other medications reviewed. ", strings.Join(c.Conditions, ", "))
	}
	b.WriteString("Alternative etiologies evaluated per available clinical information.\n\n")
	b.WriteString("Literature Evidence: Available literature assessed as per documentation.\n\n")
	b.WriteString("Mechanistic Plausibility: Assessed based on known pharmacology.\n\n")

	b.WriteString("COMPANY CAUSALITY ASSESSMENT:\n")
	category, rationale := companyCausality(c)
	fmt.Fprintf(b, "Causality: %s\n\n", category)
	b.WriteString("Rationale:\n")
	for _, r := range rationale {
		fmt.Fprintf(b, "  - %s\n", r)
	}
	b.WriteString("\n")

	b.WriteString("WHO UMC CAUSALITY CATEGORY:\n")
	if c.ClassifierAvailable {
		switch {
		case c.MaxConfidence >= 0.8:
			b.WriteString("Category: PROBABLE/LIKELY\n")
		case c.MaxConfidence >= 0.5:
			b.WriteString("Category: POSSIBLE\n")
		default:
			b.WriteString("Category: UNLIKELY\n")
		}
	} else {
		b.WriteString("Category: UNDETERMINED (further assessment needed)\n")
	}
	b.WriteString("\n")

	b.WriteString("NARANJO SCALE EQUIVALENT:\n")
	if c.ClassifierAvailable {
		score, cat := taxonomy.NaranjoFromConfidence(c.MaxConfidence)
		fmt.Fprintf(b, "Estimated Score: %d\n", score)
		fmt.Fprintf(b, "Category: %s\n", strings.ToUpper(cat))
	} else {
		b.WriteString("Score: Unable to calculate (model unavailable)\n")
	}
	b.WriteString("\n")

	b.WriteString("CONCLUSION:\n")
	switch {
	case !c.ClassifierAvailable:
		b.WriteString("Assessment Status: Complete manual causality assessment recommended.\n")
		b.WriteString("Consult with medical/pharmacovigilance professional for detailed analysis.\n")
	case c.MaxConfidence >= 0.5 && c.Drug != "":
		fmt.Fprintf(b, "The reported adverse event is %s to %s therapy. ", strings.ToLower(category), c.Drug)
		b.WriteString("Healthcare professionals should monitor for similar symptoms during treatment ")
		b.WriteString("and consider appropriate clinical management if adverse events occur.\n")
	case c.MaxConfidence >= 0.5:
		fmt.Fprintf(b, "The reported adverse event is %s. ", strings.ToLower(category))
		b.WriteString("Further clinical correlation recommended.\n")
	case c.Drug != "":
		fmt.Fprintf(b, "Based on available evidence, the relationship between %s and the reported event ", c.Drug)
		b.WriteString("is considered unlikely. Continued pharmacovigilance monitoring is recommended.\n")
	default:
		b.WriteString("Based on available evidence, a causal relationship appears unlikely. ")
		b.WriteString("Alternative etiologies should be considered.\n")
	}
	b.WriteString("\n")
}

func companyCausality(c DrugCase) (string, []string) {
	if !c.ClassifierAvailable {
		return "Undetermined (Model unavailable)", []string{
			"Manual causality assessment required",
			"Consultation with medical professional recommended",
		}
	}
	switch {
	case c.MaxConfidence >= 0.8:
		markerLine := "Clinical evidence supports relationship"
		if len(c.Markers) > 0 {
			markerLine = "Causality markers present"
		}
		return "Related (Probable)", []string{
			"Strong temporal relationship",
			"High confidence score from model assessment",
			markerLine,
			"Biologically plausible mechanism",
		}
	case c.MaxConfidence >= 0.5:
		return "Related (Possible)", []string{
			"Temporal relationship noted",
			"Moderate confidence from model assessment",
			"Alternative causes considered",
			"Requires continued monitoring",
		}
	default:
		return "Unlikely to be related", []string{
			"Weak or absent temporal association",
			"Low confidence score",
			"Alternative etiologies more probable",
		}
	}
}
