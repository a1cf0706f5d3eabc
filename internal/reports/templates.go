// Package reports renders analysis results into the three plain-text report
// formats: case summary, causality assessment, and PBRER Section 11 company
// comment. Rendering is pure string assembly; missing fields are filled with
// explicit placeholders, never omitted.
package reports

import "strings"

const lineWidth = 80

func rule() string     { return strings.Repeat("=", lineWidth) }
func thinRule() string { return strings.Repeat("-", lineWidth) }

// Regulatory language tables keyed by causality bucket, per ICH E2C(R2)
// phrasing. The first entry of each list is the default statement.
var causalityLanguage = map[string][]string{
	"definite": {
		"A definite causal relationship is established based on temporal association, positive dechallenge, and positive rechallenge",
		"The adverse event demonstrates a clear temporal relationship with drug administration, with resolution upon discontinuation and recurrence upon rechallenge",
		"Strong evidence supports a causal association, including biological plausibility and dose-response relationship",
	},
	"probable": {
		"A probable causal relationship exists based on temporal association and absence of alternative explanations",
		"The adverse event is likely related to the medicinal product, considering the temporal sequence and pharmacological plausibility",
		"Available evidence suggests a probable association, though confounding factors cannot be entirely excluded",
	},
	"possible": {
		"A possible causal relationship cannot be excluded based on temporal association",
		"The adverse event may be attributed to the medicinal product, although alternative etiologies are plausible",
		"Insufficient data preclude definitive causality assessment; however, a possible association warrants continued monitoring",
	},
	"unlikely": {
		"The temporal relationship and clinical presentation suggest alternative etiologies are more likely",
		"Available evidence does not support a causal association with the medicinal product",
		"The adverse event is unlikely to be drug-related based on the known pharmacological profile",
	},
}

var regulatoryActions = map[string][]string{
	"warnings": {
		"Addition to Warnings and Precautions section is recommended",
		"Enhanced warning language is warranted based on post-marketing experience",
	},
	"adverse_reactions": {
		"Addition to Adverse Reactions section with frequency estimate",
		"Update to reflect post-marketing surveillance findings",
	},
	"risk_additional": {
		"Healthcare Professional Communication (DHPC) is recommended",
		"Enhanced pharmacovigilance monitoring is recommended",
	},
	"risk_routine": {
		"Current product labeling provides adequate risk information",
		"Standard pharmacovigilance activities are sufficient",
	},
}

// CausalityStatement picks the regulatory causality sentence for a WHO-UMC
// category and confidence.
func CausalityStatement(whoCategory string, confidence float64) string {
	switch {
	case confidence > 0.95 && (whoCategory == "Certain/Definite" || whoCategory == "Probable/Likely"):
		return causalityLanguage["definite"][0]
	case confidence > 0.80 && whoCategory == "Probable/Likely":
		return causalityLanguage["probable"][0]
	case confidence > 0.60:
		return causalityLanguage["possible"][0]
	default:
		return causalityLanguage["unlikely"][0]
	}
}

// RegulatoryRecommendation picks the labeling or risk-minimization action for
// a classification and confidence.
func RegulatoryRecommendation(classification string, confidence float64, serious bool) string {
	switch {
	case classification == "related" && confidence > 0.95:
		if serious {
			return regulatoryActions["warnings"][0]
		}
		return regulatoryActions["adverse_reactions"][0]
	case classification == "related" && confidence > 0.80:
		return regulatoryActions["risk_additional"][0]
	default:
		return regulatoryActions["risk_routine"][0]
	}
}
