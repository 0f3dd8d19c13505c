package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finhealth/internal/errors"
	"finhealth/internal/middleware"
	"finhealth/internal/services"
)

// multipartSlack covers form fields and boundaries on top of the file limit.
const multipartSlack = 64 << 10

// AnalysisHandler handles analysis runs.
type AnalysisHandler struct {
	analysisService services.AnalysisServicer
	maxUploadBytes  int64
}

// NewAnalysisHandler creates a new AnalysisHandler. Uploads larger than
// maxUploadBytes are rejected.
func NewAnalysisHandler(analysisService services.AnalysisServicer, maxUploadBytes int64) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, maxUploadBytes: maxUploadBytes}
}

// RunAnalysisForm holds the multipart fields sent with the transaction file.
type RunAnalysisForm struct {
	BusinessType string   `form:"business_type" binding:"omitempty,business_type"`
	Language     string   `form:"language" binding:"omitempty,max=10"`
	DebtRatio    *float64 `form:"debt_ratio" binding:"omitempty,gte=0"`
	GSTIN        string   `form:"gstin" binding:"omitempty,gstin"`
}

// RunAnalysis handles an end-to-end financial health analysis.
// @Summary     Run a financial analysis
// @Description Upload a transaction file (CSV, XLSX, PDF or TXT) and receive metrics, risk, credit readiness, projections, tax and an AI narrative
// @Tags        analysis
// @Accept      multipart/form-data
// @Produce     json
// @Security    ApiKeyAuth
// @Param       file          formData file   true  "Transaction file"
// @Param       business_type formData string false "Business type (default Retail)"
// @Param       language      formData string false "Report language: en, hi, es (default en)"
// @Param       debt_ratio    formData number false "Debt ratio used by credit scoring (default 0)"
// @Param       gstin         formData string false "GSTIN for the tax authority lookup"
// @Success     200 {object} services.AnalysisResult "Analysis result"
// @Failure     400 {object} ErrorResponse "Invalid file or schema"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Pipeline failure"
// @Router      /analysis/run [post]
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		limit := h.maxUploadBytes + multipartSlack
		if c.Request.ContentLength > limit {
			respondWithError(c, h.tooLarge())
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	var form RunAnalysisForm
	if err := c.ShouldBind(&form); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondWithError(c, h.tooLarge())
			return
		}
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.ErrFileRequired)
		return
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		respondWithError(c, h.tooLarge())
		return
	}

	file, err := header.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrFileUnreadable, err))
		return
	}
	defer file.Close()

	req := services.AnalysisRequest{
		Filename:     header.Filename,
		File:         file,
		BusinessType: form.BusinessType,
		Language:     form.Language,
		GSTIN:        form.GSTIN,
		IPAddress:    c.ClientIP(),
		RequestID:    middleware.RequestID(c),
	}
	if form.DebtRatio != nil {
		req.DebtRatio = *form.DebtRatio
	}

	result, err := h.analysisService.Run(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AnalysisHandler) tooLarge() error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("File exceeds the %d MB upload limit", h.maxUploadBytes>>20))
}
