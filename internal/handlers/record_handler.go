package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finhealth/internal/errors"
	"finhealth/internal/middleware"
	"finhealth/internal/models"
	"finhealth/internal/services"
)

// RecordHandler serves stored analyses and their share links.
type RecordHandler struct {
	recordService services.RecordServicer
	shareService  services.ShareServicer
	auditService  services.AuditServicer
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService services.RecordServicer, shareService services.ShareServicer, auditService services.AuditServicer) *RecordHandler {
	return &RecordHandler{recordService: recordService, shareService: shareService, auditService: auditService}
}

// GetAnalysis returns one stored analysis.
// @Summary     Get an analysis
// @Tags        analyses
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Analysis ID"
// @Success     200 {object} services.AnalysisEntry "Analysis"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Analysis not found"
// @Router      /analyses/{id} [get]
func (h *RecordHandler) GetAnalysis(c *gin.Context) {
	id, err := parseAnalysisID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.recordService.GetAnalysis(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": entry})
}

// ShareAnalysis issues a read-only share link for an analysis.
// @Summary     Share an analysis
// @Tags        analyses
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Analysis ID"
// @Success     201 {object} services.ShareLink "Share link"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Analysis not found"
// @Router      /analyses/{id}/share [post]
func (h *RecordHandler) ShareAnalysis(c *gin.Context) {
	id, err := parseAnalysisID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	link, err := h.shareService.CreateShareLink(id, c.ClientIP(), middleware.RequestID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"share": link})
}

// GetSharedAnalysis returns the analysis a verified share token points at.
// @Summary     Open a shared analysis
// @Tags        analyses
// @Produce     json
// @Param       token path string true "Share token"
// @Success     200 {object} services.AnalysisEntry "Analysis"
// @Failure     401 {object} ErrorResponse "Invalid or expired share link"
// @Failure     404 {object} ErrorResponse "Analysis not found"
// @Router      /shared/{token} [get]
func (h *RecordHandler) GetSharedAnalysis(c *gin.Context) {
	id, ok := middleware.SharedAnalysisID(c)
	if !ok {
		respondWithError(c, apperrors.ErrInvalidShareToken)
		return
	}

	entry, err := h.recordService.GetAnalysis(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(models.AuditActionSharedView, "sme_analysis", id, c.ClientIP(), middleware.RequestID(c), nil)

	c.JSON(http.StatusOK, gin.H{"analysis": entry})
}
