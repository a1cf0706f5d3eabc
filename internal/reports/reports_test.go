package reports

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"causality-backend/internal/entities"
)

func relatedCase() DrugCase {
	return DrugCase{
		Drug:           "cisplatin",
		Source:         "case-report.pdf",
		Date:           time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalSentences: 5,
		RelatedCount:   4,
		MaxConfidence:  0.91,
		Events:         []string{"hearing loss", "nephrotoxicity"},
		Findings: []Finding{
			{Text: "Hearing loss was caused by cisplatin therapy.", Confidence: 0.91},
			{Text: "Nephrotoxicity followed the second cycle.", Confidence: 0.74},
		},
		Markers:             []string{"caused by"},
		Demographics:        entities.Demographics{Age: "64", Gender: "Female"},
		Conditions:          []string{"Hypertension"},
		ClassifierAvailable: true,
	}
}

func TestSummarySections(t *testing.T) {
	out := Summary(relatedCase())

	for _, section := range []string{
		"MEDICAL CASE SUMMARY",
		"PATIENT DEMOGRAPHICS:",
		"CONCURRENT CONDITIONS:",
		"CONCOMITANT MEDICATIONS:",
		"DRUG AND TREATMENT INFORMATION:",
		"ADVERSE EVENT INFORMATION:",
		"DECHALLENGE/RECHALLENGE:",
		"ALTERNATIVE ETIOLOGY CONSIDERATION:",
		"CAUSALITY DISCUSSION:",
		"OUTCOME:",
		"COMPANY COMMENT",
		"COMPANY CAUSALITY ASSESSMENT:",
		"WHO UMC CAUSALITY CATEGORY:",
		"NARANJO SCALE EQUIVALENT:",
		"CONCLUSION:",
	} {
		if !strings.Contains(out, section) {
			t.Errorf("summary missing section %q", section)
		}
	}

	if !strings.Contains(out, "64-year-old female") {
		t.Error("demographics not rendered")
	}
	if !strings.Contains(out, "Deafness (hearing loss)") {
		t.Error("standardized event label not rendered")
	}
	if !strings.Contains(out, "Category: PROBABLE/LIKELY") {
		t.Error("WHO-UMC category missing for high confidence")
	}
	if !strings.Contains(out, "Estimated Score: 9") {
		t.Error("Naranjo equivalent missing")
	}
}

func TestSummaryPlaceholders(t *testing.T) {
	out := Summary(DrugCase{ClassifierAvailable: true})

	for _, placeholder := range []string{
		"Age/Sex: Not specified in available documentation",
		"Relevant Medical History: Not documented in case report",
		"Suspect Drug: Not identified in document",
		"Event: No specific adverse events identified in document",
		"Underlying conditions: Not documented in available information",
	} {
		if !strings.Contains(out, placeholder) {
			t.Errorf("summary missing placeholder %q", placeholder)
		}
	}
}

func TestSummaryClassifierUnavailable(t *testing.T) {
	c := relatedCase()
	c.ClassifierAvailable = false
	out := Summary(c)

	if !strings.Contains(out, "Unable to perform (model not available)") {
		t.Error("missing degraded assessment line")
	}
	if !strings.Contains(out, "Causality: Undetermined (Model unavailable)") {
		t.Error("missing undetermined causality")
	}
	if !strings.Contains(out, "Score: Unable to calculate (model unavailable)") {
		t.Error("missing Naranjo fallback")
	}
}

func TestCausalityReport(t *testing.T) {
	out := Causality(relatedCase())

	if !strings.Contains(out, "REGULATORY CAUSALITY ASSESSMENT REPORT") {
		t.Error("missing title")
	}
	if !strings.Contains(out, "DRUG-EVENT PAIR 1") || !strings.Contains(out, "DRUG-EVENT PAIR 2") {
		t.Error("expected one block per event")
	}
	if !strings.Contains(out, "Classification: RELATED") {
		t.Error("missing classification")
	}
	if !strings.Contains(out, "Acute kidney injury (nephrotoxicity)") {
		t.Error("missing standardized event")
	}
	if !strings.Contains(out, "SUPPORTING EVIDENCE") {
		t.Error("missing evidence section")
	}
	if !strings.Contains(out, strings.Repeat("=", 80)) {
		t.Error("missing rule lines")
	}
}

func TestCausalityReportNoDrug(t *testing.T) {
	out := Causality(DrugCase{Date: time.Now()})
	if !strings.Contains(out, "No drugs identified in the document.") {
		t.Error("missing no-drug section")
	}
}

func TestPBRERSectionOrder(t *testing.T) {
	out := PBRERSection11(relatedCase())

	sections := []string{
		"EXECUTIVE SUMMARY",
		"ASSESSMENT OF CAUSALITY",
		"SAFETY PROFILE",
		"RISK-BENEFIT CONSIDERATIONS",
		"RECOMMENDATIONS",
		"CONCLUSION",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		if idx < 0 {
			t.Fatalf("missing section %q", s)
		}
		if idx < last {
			t.Errorf("section %q out of order", s)
		}
		last = idx
	}

	// 4/5 related sentences puts the case in the related bucket.
	if !strings.Contains(out, "is considered RELATED") {
		t.Error("expected RELATED assessment")
	}
	if !strings.Contains(out, "Include in cumulative review for next PSUR") {
		t.Error("missing related-bucket recommendation")
	}
}

func TestPBRERNoRelatedSentences(t *testing.T) {
	c := relatedCase()
	c.RelatedCount = 0
	out := PBRERSection11(c)

	if !strings.Contains(out, "no clear causality relationship") {
		t.Error("missing negative executive summary")
	}
	if !strings.Contains(out, "is considered NOT RELATED") {
		t.Error("expected NOT RELATED assessment")
	}
}

func TestOverallAssessmentBuckets(t *testing.T) {
	tests := []struct {
		related int
		total   int
		want    string
	}{
		{0, 10, assessNotRelated},
		{8, 10, assessRelated},
		{5, 10, assessPossibly},
		{2, 10, assessUnlikely},
	}
	for _, tc := range tests {
		c := DrugCase{RelatedCount: tc.related, TotalSentences: tc.total}
		if got := c.overallAssessment(); got != tc.want {
			t.Errorf("%d/%d = %q, want %q", tc.related, tc.total, got, tc.want)
		}
	}
}

func TestCausalityStatementSelection(t *testing.T) {
	if got := CausalityStatement("Probable/Likely", 0.97); !strings.Contains(got, "definite causal relationship") {
		t.Errorf("high confidence probable = %q", got)
	}
	if got := CausalityStatement("Probable/Likely", 0.85); !strings.Contains(got, "probable causal relationship") {
		t.Errorf("mid confidence probable = %q", got)
	}
	if got := CausalityStatement("Unlikely", 0.65); !strings.Contains(got, "possible causal relationship") {
		t.Errorf("0.65 = %q", got)
	}
	if got := CausalityStatement("Unlikely", 0.40); !strings.Contains(got, "alternative etiologies") {
		t.Errorf("0.40 = %q", got)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	s := strings.Repeat("é", 6)
	got := truncate(s, 4)
	if got != strings.Repeat("é", 4)+"..." {
		t.Errorf("truncate = %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
}
