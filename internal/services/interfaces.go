package services

import (
	"context"
	"io"
	"time"

	"finhealth/internal/external"
	"finhealth/internal/finance"
	"finhealth/internal/models"
	"finhealth/internal/pagination"
)

// AnalysisRequest is one uploaded transaction file plus its form fields.
type AnalysisRequest struct {
	Filename     string
	File         io.Reader
	BusinessType string
	Language     string
	DebtRatio    float64
	GSTIN        string
	IPAddress    string
	RequestID    string
}

// BusinessInfo describes the analysed business.
type BusinessInfo struct {
	Type                  string            `json:"type"`
	Source                string            `json:"source"`
	ExternalVerifications *external.Summary `json:"external_verifications"`
}

// FinancialSummary groups the computed metrics and their risk assessment.
type FinancialSummary struct {
	Metrics *finance.Snapshot   `json:"metrics"`
	Risk    *finance.Assessment `json:"risk"`
}

// NarrativeInfo reports how the AI report was produced.
type NarrativeInfo struct {
	Source         string `json:"source"`
	FallbackReason string `json:"fallback_reason,omitempty"`
	Translated     bool   `json:"translated"`
}

// AnalysisMeta carries the persisted record reference.
type AnalysisMeta struct {
	Language string `json:"language"`
	DBID     string `json:"db_id"`
}

// AnalysisResult is the full response of one analysis run.
type AnalysisResult struct {
	Status           string               `json:"status"`
	BusinessInfo     BusinessInfo         `json:"business_info"`
	FinancialSummary FinancialSummary     `json:"financial_summary"`
	CreditReadiness  finance.Readiness    `json:"credit_readiness"`
	Projections      []finance.Projection `json:"projections"`
	BankingProducts  []finance.Product    `json:"banking_products"`
	TaxCompliance    finance.TaxReport    `json:"tax_compliance"`
	AIReport         string               `json:"ai_report"`
	Narrative        NarrativeInfo        `json:"narrative"`
	Meta             AnalysisMeta         `json:"meta"`
}

// AnalysisServicer runs the end-to-end analysis pipeline.
type AnalysisServicer interface {
	Run(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
}

// NewAnalysisRecord is what gets persisted for one run, in the clear.
type NewAnalysisRecord struct {
	BusinessName    string
	BusinessType    string
	Metrics         *finance.Snapshot
	AISummary       string
	RiskLevel       finance.Level
	CreditScore     int
	CreditGrade     string
	NarrativeSource string
	ReportLanguage  string
}

// AnalysisEntry is a decrypted analysis record. FinancialMetrics and
// AISummary hold DecryptionFailed when the ciphertext cannot be opened.
type AnalysisEntry struct {
	ID               string    `json:"id"`
	BusinessName     string    `json:"business_name"`
	BusinessType     string    `json:"business_type"`
	Timestamp        time.Time `json:"timestamp"`
	FinancialMetrics any       `json:"financial_metrics"`
	AISummary        string    `json:"ai_summary"`
	RiskLevel        string    `json:"risk_level"`
	CreditScore      int       `json:"credit_score"`
	CreditGrade      string    `json:"credit_grade"`
	NarrativeSource  string    `json:"narrative_source"`
	ReportLanguage   string    `json:"report_language"`
}

// HistoryFilter holds optional filter parameters for listing analyses.
type HistoryFilter struct {
	RiskLevel *string
	Language  *string
}

// RecordServicer persists analyses encrypted at rest.
type RecordServicer interface {
	SaveAnalysis(rec NewAnalysisRecord) (*models.SMEAnalysis, error)
	ListHistory(page pagination.PageRequest, filter HistoryFilter) (*pagination.PageResponse[AnalysisEntry], error)
	GetAnalysis(id string) (*AnalysisEntry, error)
}

// ExecutiveSummary opens the investor report.
type ExecutiveSummary struct {
	OverallHealth string `json:"overall_health"`
	CreditGrade   string `json:"credit_grade,omitempty"`
	KeyMessage    string `json:"key_message"`
}

// AIInsights carries the narrative in text and HTML form.
type AIInsights struct {
	Narrative     string `json:"narrative"`
	NarrativeHTML string `json:"narrative_html"`
}

// InvestorReport is an investor-ready restatement of an analysis.
type InvestorReport struct {
	ExecutiveSummary    ExecutiveSummary    `json:"executive_summary"`
	FinancialHighlights *finance.Snapshot   `json:"financial_highlights"`
	RiskAssessment      *finance.Assessment `json:"risk_assessment"`
	Recommendations     any                 `json:"recommendations"`
	AIInsights          AIInsights          `json:"ai_insights"`
	Disclaimer          string              `json:"disclaimer"`
}

// ReportServicer builds investor reports from analysis payloads.
type ReportServicer interface {
	GenerateInvestorReport(payload map[string]any) (*InvestorReport, error)
}

// ShareLink is a signed read-only link to one analysis.
type ShareLink struct {
	AnalysisID string    `json:"analysis_id"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ShareServicer issues share links for stored analyses.
type ShareServicer interface {
	CreateShareLink(analysisID, ipAddress, requestID string) (*ShareLink, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress, requestID string, changes map[string]any)
}
