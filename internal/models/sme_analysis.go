package models

import "time"

// SMEAnalysis is one persisted analysis run. FinancialMetrics and AISummary
// hold ciphertext; they are never stored or logged in the clear.
type SMEAnalysis struct {
	Base
	BusinessName     string    `gorm:"not null" json:"business_name"`
	BusinessType     string    `gorm:"not null" json:"business_type"`
	AnalyzedAt       time.Time `gorm:"not null;index" json:"timestamp"`
	FinancialMetrics string    `gorm:"type:text;not null" json:"-"`
	AISummary        string    `gorm:"type:text" json:"-"`
	RiskLevel        string    `gorm:"not null" json:"risk_level"`
	CreditScore      int       `json:"credit_score"`
	CreditGrade      string    `json:"credit_grade"`
	NarrativeSource  string    `json:"narrative_source"`
	ReportLanguage   string    `gorm:"not null;default:'en'" json:"report_language"`
}

// TableName pins the table name used by the SQL migrations.
func (SMEAnalysis) TableName() string { return "sme_analyses" }
