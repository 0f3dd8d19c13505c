package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finhealth/internal/errors"
	"finhealth/internal/pagination"
	"finhealth/internal/services"
)

// ReportHandler handles investor reports and analysis history.
type ReportHandler struct {
	reportService services.ReportServicer
	recordService services.RecordServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, recordService services.RecordServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, recordService: recordService}
}

// HistoryQuery holds the history listing query parameters.
type HistoryQuery struct {
	pagination.PageRequest
	RiskLevel string `form:"risk_level" binding:"omitempty,risk_level"`
	Language  string `form:"language" binding:"omitempty,report_language"`
}

// GenerateReport builds an investor-ready report from an analysis response.
// @Summary     Generate an investor report
// @Description Restate a /analysis/run response as an investor-ready report
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body object true "Analysis run response"
// @Success     200 {object} services.InvestorReport "Investor report"
// @Failure     400 {object} ErrorResponse "Invalid payload"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /report/generate [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid payload: body must be a JSON object"))
		return
	}

	report, err := h.reportService.GenerateInvestorReport(payload)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "report": report})
}

// GetHistory lists stored analyses, newest first.
// @Summary     Analysis history
// @Description Paginated list of decrypted analyses, newest first
// @Tags        reports
// @Produce     json
// @Security    ApiKeyAuth
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Param       risk_level query string false "Filter by overall risk (Low/Medium/High)"
// @Param       language   query string false "Filter by report language"
// @Success     200 {object} pagination.PageResponse[services.AnalysisEntry] "Paginated history"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /report/history [get]
func (h *ReportHandler) GetHistory(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.HistoryFilter
	if q.RiskLevel != "" {
		filter.RiskLevel = &q.RiskLevel
	}
	if q.Language != "" {
		filter.Language = &q.Language
	}

	history, err := h.recordService.ListHistory(q.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "history": history})
}
