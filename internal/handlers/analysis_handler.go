package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recon-analysis-backend/internal/services/analysis"
)

type AnalysisHandler struct {
	service *analysis.Service
}

func NewAnalysisHandler(s *analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{service: s}
}

// Run executes the scenario analysis for one unique-key value.
func (h *AnalysisHandler) Run(c *gin.Context) {
	var payload struct {
		WorkspaceID    string `json:"workspace_id"`
		RecordType     string `json:"record_type"`
		UniqueKeyValue string `json:"unique_key_value"`
		DateFrom       string `json:"date_from"` // "2006-01-02"
		DateTo         string `json:"date_to"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.WorkspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id required"})
		return
	}

	req := analysis.Request{
		WorkspaceID:    payload.WorkspaceID,
		RecordTypeName: payload.RecordType,
		KeyValue:       payload.UniqueKeyValue,
	}

	if payload.DateFrom != "" && payload.DateTo != "" {
		from, err1 := time.Parse("2006-01-02", payload.DateFrom)
		to, err2 := time.Parse("2006-01-02", payload.DateTo)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date bounds, expected yyyy-mm-dd"})
			return
		}
		req.DateBounds = &analysis.DateRange{From: from, To: to}
	}

	report, err := h.service.Analyze(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !report.Success {
		c.JSON(http.StatusUnprocessableEntity, report)
		return
	}
	c.JSON(http.StatusOK, report)
}

// InvalidateCache drops cached schema and rules for a workspace.
func (h *AnalysisHandler) InvalidateCache(c *gin.Context) {
	var payload struct {
		WorkspaceID string `json:"workspace_id"`
	}
	if err := c.BindJSON(&payload); err != nil || payload.WorkspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workspace_id required"})
		return
	}

	h.service.InvalidateCaches(payload.WorkspaceID)
	c.JSON(http.StatusOK, gin.H{"message": "cache invalidated", "workspace_id": payload.WorkspaceID})
}
