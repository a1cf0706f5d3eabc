package analyses

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"causality-backend/internal/classifier"
	"causality-backend/internal/documents"
	"causality-backend/internal/scoring"
	"causality-backend/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &Service{
		Repo: NewMemoryRepo(),
		Docs: &documents.Service{
			Store: local.New(t.TempDir()),
			Repo:  documents.NewMemoryRepo(),
		},
		Classifier: cueClient{},
		Config:     scoring.DefaultConfig(),
	}
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, svc
}

func seedCompletedAnalysis(t *testing.T, svc *Service) Analysis {
	t.Helper()
	result, err := svc.AnalyzeText(context.Background(), caseText, scoring.DefaultConfig())
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	now := time.Now().UTC()
	analysis := Analysis{
		ID:          "analysis-done",
		DocumentID:  "doc-1",
		Status:      StatusCompleted,
		Threshold:   0.5,
		Result:      &result,
		CompletedAt: &now,
		CreatedAt:   now,
	}
	if err := svc.Repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return analysis
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestStartAnalysisUnknownDocument(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(router, http.MethodPost, "/api/v1/analyses", gin.H{"documentId": "missing"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestStartAnalysisValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(router, http.MethodPost, "/api/v1/analyses", gin.H{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	resp = doJSON(router, http.MethodPost, "/api/v1/analyses", gin.H{"documentId": "doc", "threshold": 2.0})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad threshold, got %d", resp.Code)
	}
}

func TestGetAnalysisIncludesResult(t *testing.T) {
	router, svc := newTestRouter(t)
	analysis := seedCompletedAnalysis(t, svc)

	resp := doJSON(router, http.MethodGet, "/api/v1/analyses/"+analysis.ID, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Status string          `json:"status"`
		Result *DocumentResult `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != StatusCompleted || body.Result == nil {
		t.Fatalf("expected completed analysis with result, got %+v", body)
	}
	if body.Result.RelatedCount != 1 {
		t.Fatalf("expected 1 related sentence, got %d", body.Result.RelatedCount)
	}
}

func TestGetSummaryEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)
	analysis := seedCompletedAnalysis(t, svc)

	resp := doJSON(router, http.MethodGet, "/api/v1/analyses/"+analysis.ID+"/summary", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var summary Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.TotalSentences != 3 || summary.TotalDrugs != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.ModelPerformance.F1Score != 0.9759 {
		t.Fatalf("unexpected model performance: %+v", summary.ModelPerformance)
	}
}

func TestGetSummaryNotReady(t *testing.T) {
	router, svc := newTestRouter(t)
	queued := Analysis{ID: "queued-1", DocumentID: "doc", Status: StatusQueued, CreatedAt: time.Now().UTC()}
	if err := svc.Repo.Create(context.Background(), queued); err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp := doJSON(router, http.MethodGet, "/api/v1/analyses/queued-1/summary", nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestGetReportFormats(t *testing.T) {
	router, svc := newTestRouter(t)
	analysis := seedCompletedAnalysis(t, svc)

	tests := []struct {
		format string
		want   string
	}{
		{"summary", "MEDICAL CASE SUMMARY"},
		{"causality", "REGULATORY CAUSALITY ASSESSMENT REPORT"},
		{"pbrer", "EXECUTIVE SUMMARY"},
	}
	for _, tc := range tests {
		resp := doJSON(router, http.MethodGet, "/api/v1/analyses/"+analysis.ID+"/report?format="+tc.format, nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("format %s: expected 200, got %d", tc.format, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), tc.want) {
			t.Fatalf("format %s: report missing %q", tc.format, tc.want)
		}
	}

	resp := doJSON(router, http.MethodGet, "/api/v1/analyses/"+analysis.ID+"/report?format=bogus", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", resp.Code)
	}

	resp = doJSON(router, http.MethodGet, "/api/v1/analyses/"+analysis.ID+"/report?drug=warfarin", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown drug, got %d", resp.Code)
	}
}

func TestClassifyEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(router, http.MethodPost, "/api/v1/classify", gin.H{
		"text": "Hearing loss was an adverse effect caused by cisplatin.",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var assessment scoring.Assessment
	if err := json.NewDecoder(resp.Body).Decode(&assessment); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if assessment.Label != scoring.Related {
		t.Fatalf("expected related, got %s", assessment.Label)
	}
	if assessment.MarkerCount == 0 {
		t.Fatal("expected markers detected")
	}

	resp = doJSON(router, http.MethodPost, "/api/v1/classify", gin.H{"text": "  "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank text, got %d", resp.Code)
	}
}

func TestClassifyEndpointUnavailable(t *testing.T) {
	router, svc := newTestRouter(t)
	svc.Classifier = errClient{err: classifier.ErrUnavailable}

	resp := doJSON(router, http.MethodPost, "/api/v1/classify", gin.H{"text": "some sentence"})
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestExtractEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(router, http.MethodPost, "/api/v1/extract", gin.H{
		"text": "A 67-year-old male developed hearing loss after cisplatin therapy.",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Drugs        []string `json:"drugs"`
		Events       []string `json:"events"`
		MedDRATerms  []string `json:"meddraTerms"`
		Demographics struct {
			Age    string `json:"age"`
			Gender string `json:"gender"`
		} `json:"demographics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Drugs) != 1 || body.Drugs[0] != "cisplatin" {
		t.Fatalf("expected cisplatin, got %v", body.Drugs)
	}
	if len(body.Events) == 0 {
		t.Fatal("expected events")
	}
	if len(body.MedDRATerms) == 0 || body.MedDRATerms[0] != "Deafness" {
		t.Fatalf("expected MedDRA term Deafness, got %v", body.MedDRATerms)
	}
	if body.Demographics.Age != "67" {
		t.Fatalf("expected age 67, got %q", body.Demographics.Age)
	}
}
