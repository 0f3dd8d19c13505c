package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"finhealth/internal/external"
	apperrors "finhealth/internal/errors"
	"finhealth/internal/finance"
	"finhealth/internal/ingest"
	"finhealth/internal/logger"
	"finhealth/internal/models"
	"finhealth/internal/narrative"
)

// DefaultBusinessType is used when a request names none.
const DefaultBusinessType = "Retail"

// DefaultTranslateTimeout bounds translation when AnalysisDeps sets none.
const DefaultTranslateTimeout = 30 * time.Second

// Verifier supplies external banking and GST verifications.
type Verifier interface {
	Summary(ctx context.Context, businessID, gstin string) *external.Summary
}

// Narrator writes the narrative report.
type Narrator interface {
	Generate(ctx context.Context, in narrative.Input) narrative.Result
}

// AnalysisDeps are the collaborators of the analysis pipeline. Verifier and
// Translator are optional.
type AnalysisDeps struct {
	Evaluator        *finance.Evaluator
	TaxRules         finance.TaxRules
	Verifier         Verifier
	Narrator         Narrator
	Translator       narrative.Translator
	TranslateTimeout time.Duration
	Records          RecordServicer
	Audit            AuditServicer
}

// analysisService runs ingest, the deterministic core, narrative and
// persistence for one uploaded file.
type analysisService struct {
	deps AnalysisDeps
}

// NewAnalysisService creates a new AnalysisServicer.
func NewAnalysisService(deps AnalysisDeps) AnalysisServicer {
	if deps.Evaluator == nil {
		deps.Evaluator = finance.NewEvaluator(finance.DefaultThresholds())
	}
	if deps.TaxRules == (finance.TaxRules{}) {
		deps.TaxRules = finance.DefaultTaxRules()
	}
	if deps.Narrator == nil {
		deps.Narrator = narrative.NewCoordinator(nil, nil, 0)
	}
	if deps.TranslateTimeout <= 0 {
		deps.TranslateTimeout = DefaultTranslateTimeout
	}
	return &analysisService{deps: deps}
}

// Run analyses one transaction file end to end.
func (s *analysisService) Run(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	log := logger.Get()

	if req.File == nil || strings.TrimSpace(req.Filename) == "" {
		return nil, apperrors.ErrFileRequired
	}
	source := filepath.Base(req.Filename)
	businessType := strings.TrimSpace(req.BusinessType)
	if businessType == "" {
		businessType = DefaultBusinessType
	}
	language := strings.ToLower(strings.TrimSpace(req.Language))
	if language == "" {
		language = narrative.DefaultLanguage
	}

	log.Infow("Received file for analysis", "file", source, "business_type", businessType, "language", language)

	table, err := ingest.Parse(source, req.File)
	if err != nil {
		return nil, mapAnalysisError(err)
	}

	metrics, err := finance.ComputeFinancialMetrics(table)
	if err != nil {
		return nil, mapAnalysisError(err)
	}

	var verifications *external.Summary
	if s.deps.Verifier != nil {
		verifications = s.deps.Verifier.Summary(ctx, source, strings.ToUpper(strings.TrimSpace(req.GSTIN)))
	}

	risk, err := s.deps.Evaluator.Evaluate(metrics)
	if err != nil {
		return nil, mapAnalysisError(err)
	}
	credit := finance.ScoreCredit(metrics, risk, req.DebtRatio)
	products := finance.RecommendProducts(metrics, risk.OverallRisk)
	projections := finance.ProjectCashflow(metrics.TotalRevenue, metrics.TotalExpenses)
	tax := s.deps.TaxRules.Estimate(metrics)

	story := s.deps.Narrator.Generate(ctx, narrative.Input{Metrics: metrics, Risk: risk})
	aiReport, translated := narrative.TranslateOrKeep(ctx, s.deps.Translator, story.Text, language, s.deps.TranslateTimeout)

	record, err := s.deps.Records.SaveAnalysis(NewAnalysisRecord{
		BusinessName:    source,
		BusinessType:    businessType,
		Metrics:         metrics,
		AISummary:       aiReport,
		RiskLevel:       risk.OverallRisk,
		CreditScore:     credit.Score,
		CreditGrade:     credit.Grade,
		NarrativeSource: story.Source,
		ReportLanguage:  language,
	})
	if err != nil {
		return nil, err
	}

	if s.deps.Audit != nil {
		s.deps.Audit.Log(models.AuditActionAnalysisRun, "sme_analysis", record.ID, req.IPAddress, req.RequestID, map[string]any{
			"business_type":    businessType,
			"overall_risk":     risk.OverallRisk,
			"narrative_source": story.Source,
			"rows":             metrics.TransactionCount,
		})
	}

	log.Infow("Financial analysis completed",
		"id", record.ID,
		"overall_risk", risk.OverallRisk,
		"credit_score", credit.Score,
		"narrative_source", story.Source,
	)

	return &AnalysisResult{
		Status: "success",
		BusinessInfo: BusinessInfo{
			Type:                  businessType,
			Source:                source,
			ExternalVerifications: verifications,
		},
		FinancialSummary: FinancialSummary{Metrics: metrics, Risk: risk},
		CreditReadiness:  credit,
		Projections:      projections,
		BankingProducts:  products,
		TaxCompliance:    tax,
		AIReport:         aiReport,
		Narrative: NarrativeInfo{
			Source:         story.Source,
			FallbackReason: story.FallbackReason,
			Translated:     translated,
		},
		Meta: AnalysisMeta{Language: language, DBID: record.ID},
	}, nil
}

// mapAnalysisError converts ingest and finance errors into AppErrors.
// Schema problems are the client's fault; everything else is ours.
func mapAnalysisError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var schemaErr *finance.SchemaError
	var missingErr *finance.MissingMetricError
	switch {
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		return apperrors.WrapWithMessage(apperrors.ErrUnsupportedFormat, err.Error(), err)
	case errors.Is(err, ingest.ErrFileNotFound):
		return apperrors.Wrap(apperrors.ErrFileRequired, err)
	case errors.Is(err, ingest.ErrUnreadable):
		return apperrors.Wrap(apperrors.ErrFileUnreadable, err)
	case errors.As(err, &schemaErr):
		return apperrors.WrapWithMessage(apperrors.ErrInvalidSchema, schemaErr.Error(), err)
	case errors.As(err, &missingErr):
		return apperrors.Wrap(apperrors.ErrMissingMetric, err)
	default:
		return apperrors.Wrap(apperrors.ErrAggregationFailed, err)
	}
}
