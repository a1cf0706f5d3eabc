package analyses

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"causality-backend/internal/classifier"
	"causality-backend/internal/documents"
	"causality-backend/internal/entities"
	"causality-backend/internal/reports"
	"causality-backend/internal/scoring"
	"causality-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.startAnalysis)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.GET("/analyses/:id/summary", h.getSummary)
	rg.GET("/analyses/:id/report", h.getReport)
	rg.POST("/classify", h.classifySentence)
	rg.POST("/extract", h.extractEntities)
}

type startAnalysisRequest struct {
	DocumentID string `json:"documentId"`
	Options
}

func (h *Handler) startAnalysis(c *gin.Context) {
	var req startAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.DocumentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentId is required", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), c.GetString("requestId"))
	analysis, err := h.Svc.Create(ctx, req.DocumentID, req.Options)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case strings.Contains(err.Error(), "threshold"):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"analysisId": analysis.ID,
		"documentId": analysis.DocumentID,
		"status":     analysis.Status,
	})
}

func (h *Handler) loadAnalysis(c *gin.Context) (Analysis, bool) {
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return Analysis{}, false
	}
	analysis, err := h.Svc.Get(c.Request.Context(), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return Analysis{}, false
	}
	return analysis, true
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysis, ok := h.loadAnalysis(c)
	if !ok {
		return
	}

	resp := gin.H{
		"id":         analysis.ID,
		"documentId": analysis.DocumentID,
		"status":     analysis.Status,
		"createdAt":  analysis.CreatedAt,
	}
	if analysis.Status == StatusCompleted && analysis.Result != nil {
		resp["result"] = analysis.Result
	}
	if analysis.Status == StatusFailed {
		resp["errorCode"] = analysis.ErrorCode
		resp["errorMessage"] = analysis.ErrorMsg
		resp["retryable"] = analysis.Retryable
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) getSummary(c *gin.Context) {
	analysis, ok := h.loadAnalysis(c)
	if !ok {
		return
	}
	if analysis.Status != StatusCompleted || analysis.Result == nil {
		respond.Error(c, http.StatusConflict, "not_ready", "analysis is not completed", gin.H{"status": analysis.Status})
		return
	}

	respond.JSON(c, http.StatusOK, Summarize(*analysis.Result))
}

func (h *Handler) getReport(c *gin.Context) {
	analysis, ok := h.loadAnalysis(c)
	if !ok {
		return
	}
	if analysis.Status != StatusCompleted || analysis.Result == nil {
		respond.Error(c, http.StatusConflict, "not_ready", "analysis is not completed", gin.H{"status": analysis.Status})
		return
	}

	format := c.DefaultQuery("format", "summary")
	drug := c.Query("drug")

	drugCase, found := DrugCaseFor(*analysis.Result, drug, "Uploaded document "+analysis.DocumentID, analysis.CreatedAt)
	if !found {
		respond.Error(c, http.StatusNotFound, "not_found", "drug not found in analysis", gin.H{"drug": drug})
		return
	}

	var rendered string
	switch format {
	case "summary":
		rendered = reports.Summary(drugCase)
	case "causality":
		rendered = reports.Causality(drugCase)
	case "pbrer":
		rendered = reports.PBRERSection11(drugCase)
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "format must be summary, causality, or pbrer", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+format+`_report.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(rendered))
}

type classifyRequest struct {
	Text string `json:"text"`
	Options
}

func (h *Handler) classifySentence(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	scorer := scoring.New(h.Svc.Classifier, h.Svc.resolveConfig(req.Options))
	assessment, err := scorer.Score(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, classifier.ErrUnavailable) {
			respond.Error(c, http.StatusServiceUnavailable, "classifier_unavailable", "classifier is unavailable", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to classify sentence", nil)
		return
	}

	respond.JSON(c, http.StatusOK, assessment)
}

type extractRequest struct {
	Text string `json:"text"`
}

func (h *Handler) extractEntities(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	extractor := h.Svc.extractor()
	events := extractor.EventNames(req.Text)
	standardized := make([]string, 0, len(events))
	for _, event := range events {
		standardized = append(standardized, entities.Standardize(event))
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"drugs":        extractor.DrugNames(req.Text),
		"events":       events,
		"meddraTerms":  standardized,
		"demographics": entities.ExtractDemographics(req.Text),
		"conditions":   entities.ExtractConditions(req.Text),
	})
}
