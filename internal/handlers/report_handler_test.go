package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finhealth/internal/errors"
	"finhealth/internal/pagination"
	"finhealth/internal/services"
)

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	r.POST("/report/generate", handler.GenerateReport)
	r.GET("/report/history", handler.GetHistory)
	return r
}

func TestReportHandler_GenerateReport(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var got map[string]any
		svc := &mockReportService{generateFn: func(payload map[string]any) (*services.InvestorReport, error) {
			got = payload
			return &services.InvestorReport{
				ExecutiveSummary: services.ExecutiveSummary{OverallHealth: "Low"},
				Disclaimer:       "d",
			}, nil
		}}
		r := setupReportRouter(NewReportHandler(svc, &mockRecordService{}))

		rec := doRequest(r, http.MethodPost, "/report/generate", `{"ai_report":"x","financial_summary":{}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got["ai_report"] != "x" {
			t.Errorf("expected payload to reach the service, got %v", got)
		}
		result := parseJSON(t, rec)
		if result["status"] != "success" {
			t.Errorf("expected status success, got %v", result["status"])
		}
		summary := result["report"].(map[string]interface{})["executive_summary"].(map[string]interface{})
		if summary["overall_health"] != "Low" {
			t.Errorf("expected overall health Low, got %v", summary["overall_health"])
		}
	})

	t.Run("returns 400 for non-object body", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}, &mockRecordService{}))
		rec := doRequest(r, http.MethodPost, "/report/generate", `[1,2]`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns service error", func(t *testing.T) {
		svc := &mockReportService{generateFn: func(map[string]any) (*services.InvestorReport, error) {
			return nil, apperrors.ErrPayloadMissingMetric
		}}
		r := setupReportRouter(NewReportHandler(svc, &mockRecordService{}))
		rec := doRequest(r, http.MethodPost, "/report/generate", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MISSING_METRIC")
	})
}

func TestReportHandler_GetHistory(t *testing.T) {
	t.Run("passes pagination and filters", func(t *testing.T) {
		var gotPage pagination.PageRequest
		var gotFilter services.HistoryFilter
		records := &mockRecordService{listHistoryFn: func(page pagination.PageRequest, filter services.HistoryFilter) (*pagination.PageResponse[services.AnalysisEntry], error) {
			gotPage, gotFilter = page, filter
			resp := pagination.NewPageResponse([]services.AnalysisEntry{{ID: testAnalysisID}}, page.Page, page.PageSize, 1)
			return &resp, nil
		}}
		r := setupReportRouter(NewReportHandler(&mockReportService{}, records))

		rec := doRequest(r, http.MethodGet, "/report/history?page=2&page_size=5&risk_level=High&language=hi", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("expected page 2 size 5, got %+v", gotPage)
		}
		if gotFilter.RiskLevel == nil || *gotFilter.RiskLevel != "High" || gotFilter.Language == nil || *gotFilter.Language != "hi" {
			t.Errorf("unexpected filter: %+v", gotFilter)
		}
		history := parseJSON(t, rec)["history"].(map[string]interface{})
		if data := history["data"].([]interface{}); len(data) != 1 {
			t.Errorf("expected 1 entry, got %d", len(data))
		}
	})

	t.Run("no filters", func(t *testing.T) {
		var gotFilter services.HistoryFilter
		records := &mockRecordService{listHistoryFn: func(page pagination.PageRequest, filter services.HistoryFilter) (*pagination.PageResponse[services.AnalysisEntry], error) {
			gotFilter = filter
			resp := pagination.NewPageResponse[services.AnalysisEntry](nil, 1, 20, 0)
			return &resp, nil
		}}
		r := setupReportRouter(NewReportHandler(&mockReportService{}, records))
		rec := doRequest(r, http.MethodGet, "/report/history", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.RiskLevel != nil || gotFilter.Language != nil {
			t.Errorf("expected empty filter, got %+v", gotFilter)
		}
	})

	t.Run("returns 400 for invalid query", func(t *testing.T) {
		for _, q := range []string{"page_size=500", "risk_level=Severe", "language=fr"} {
			t.Run(q, func(t *testing.T) {
				r := setupReportRouter(NewReportHandler(&mockReportService{}, &mockRecordService{}))
				rec := doRequest(r, http.MethodGet, "/report/history?"+q, "")
				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d", rec.Code)
				}
				assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
			})
		}
	})
}
