package services

import (
	"encoding/json"
	"errors"
	"strings"

	apperrors "finhealth/internal/errors"
	"finhealth/internal/finance"
	"finhealth/internal/logger"
	"finhealth/internal/narrative"
)

const (
	reportKeyMessage = "This report provides an overview of financial health, " +
		"risk exposure, and credit readiness based on deterministic analysis."
	reportDisclaimer = "All financial figures are computed using deterministic rules. " +
		"AI is used strictly for explanation and recommendations."
)

// reportService restates an analysis payload for investors.
type reportService struct {
	evaluator *finance.Evaluator
}

// NewReportService creates a new ReportServicer. The evaluator fills in the
// risk assessment when a payload carries none; nil uses the default
// thresholds.
func NewReportService(evaluator *finance.Evaluator) ReportServicer {
	if evaluator == nil {
		evaluator = finance.NewEvaluator(finance.DefaultThresholds())
	}
	return &reportService{evaluator: evaluator}
}

// GenerateInvestorReport builds the investor report from a payload shaped
// like an analysis run response.
func (s *reportService) GenerateInvestorReport(payload map[string]any) (*InvestorReport, error) {
	log := logger.Get()
	log.Info("Starting report generation")

	summary, okSummary := payload["financial_summary"].(map[string]any)
	aiReport, okReport := payload["ai_report"].(string)
	if !okSummary || !okReport {
		log.Warn("Invalid payload: missing financial_summary or ai_report")
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid payload: missing financial_summary or ai_report")
	}

	metrics, okMetrics := summary["metrics"].(map[string]any)
	risk, okRisk := summary["risk"].(map[string]any)
	if !okMetrics || !okRisk {
		log.Warn("Invalid payload: missing metrics or risk data")
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid payload: missing metrics or risk data")
	}

	snap, err := finance.ParseSnapshot(metrics)
	if err != nil {
		var missing *finance.MissingMetricError
		if errors.As(err, &missing) {
			return nil, apperrors.WrapWithMessage(apperrors.ErrPayloadMissingMetric, missing.Error(), err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	assessment, err := s.assessment(risk, snap)
	if err != nil {
		return nil, err
	}

	html, err := narrative.ToHTML(narrative.Markdown(narrative.ParseRendered(aiReport)))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := &InvestorReport{
		ExecutiveSummary: ExecutiveSummary{
			OverallHealth: string(assessment.OverallRisk),
			CreditGrade:   creditGrade(payload),
			KeyMessage:    reportKeyMessage,
		},
		FinancialHighlights: snap,
		RiskAssessment:      assessment,
		Recommendations:     recommendations(payload),
		AIInsights: AIInsights{
			Narrative:     aiReport,
			NarrativeHTML: html,
		},
		Disclaimer: reportDisclaimer,
	}

	log.Infow("Investor-ready financial report generated", "overall_risk", assessment.OverallRisk)
	return report, nil
}

// assessment decodes the posted risk block, re-evaluating from the snapshot
// when it has no overall level.
func (s *reportService) assessment(risk map[string]any, snap *finance.Snapshot) (*finance.Assessment, error) {
	raw, err := json.Marshal(risk)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	var a finance.Assessment
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, apperrors.WrapWithMessage(apperrors.ErrInvalidInput, "Invalid payload: malformed risk data", err)
	}
	if strings.TrimSpace(string(a.OverallRisk)) != "" {
		return &a, nil
	}

	logger.Get().Debug("Risk payload has no overall level, re-evaluating from metrics")
	evaluated, err := s.evaluator.Evaluate(snap)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPayloadMissingMetric, err)
	}
	return evaluated, nil
}

func creditGrade(payload map[string]any) string {
	credit, _ := payload["credit_readiness"].(map[string]any)
	grade, _ := credit["grade"].(string)
	return grade
}

// recommendations prefers an explicit recommendations block and falls back
// to the banking products of an analysis run.
func recommendations(payload map[string]any) any {
	if v, ok := payload["recommendations"]; ok && v != nil {
		return v
	}
	if v, ok := payload["banking_products"]; ok && v != nil {
		return v
	}
	return map[string]any{}
}
