package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finhealth/internal/crypto"
	"finhealth/internal/finance"
	"finhealth/internal/models"

	"gorm.io/gorm"
)

// TestEncryptionKey is the secret behind TestSealer.
const TestEncryptionKey = "test-encryption-key"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestSealer returns a sealer keyed with TestEncryptionKey.
func TestSealer(t *testing.T) *crypto.Sealer {
	t.Helper()
	s, err := crypto.NewSealer(TestEncryptionKey)
	if err != nil {
		t.Fatalf("failed to create sealer: %v", err)
	}
	return s
}

// SampleSnapshot returns the metrics of a small profitable business.
func SampleSnapshot() *finance.Snapshot {
	return &finance.Snapshot{
		TotalRevenue:      18000,
		TotalExpenses:     8000,
		NetCashflow:       10000,
		CategoryBreakdown: map[string]float64{"Sales": 18000, "Rent": 5000, "Salaries": 3000},
		MonthlyCashflow:   map[string]float64{"2024-01": 5000, "2024-02": 5000},
		ExpenseRatio:      0.44,
		TransactionCount:  4,
	}
}

// CreateTestAnalysis stores an encrypted analysis record for snap analysed at.
func CreateTestAnalysis(t *testing.T, db *gorm.DB, sealer *crypto.Sealer, snap *finance.Snapshot, at time.Time) *models.SMEAnalysis {
	t.Helper()

	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}
	metrics, err := sealer.Seal(raw)
	if err != nil {
		t.Fatalf("failed to seal metrics: %v", err)
	}
	summary, err := sealer.SealString("OVERALL FINANCIAL HEALTH\nStable.")
	if err != nil {
		t.Fatalf("failed to seal summary: %v", err)
	}

	record := &models.SMEAnalysis{
		BusinessName:     fmt.Sprintf("business-%d.csv", nextID()),
		BusinessType:     "Retail",
		AnalyzedAt:       at,
		FinancialMetrics: metrics,
		AISummary:        summary,
		RiskLevel:        string(finance.LevelLow),
		CreditScore:      100,
		CreditGrade:      "A",
		NarrativeSource:  "deterministic",
		ReportLanguage:   "en",
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test analysis: %v", err)
	}
	return record
}

// CreateCorruptAnalysis stores a record whose ciphertext cannot be opened.
func CreateCorruptAnalysis(t *testing.T, db *gorm.DB, at time.Time) *models.SMEAnalysis {
	t.Helper()

	record := &models.SMEAnalysis{
		BusinessName:     fmt.Sprintf("corrupt-%d.csv", nextID()),
		BusinessType:     "Retail",
		AnalyzedAt:       at,
		FinancialMetrics: "bm90IGNpcGhlcnRleHQ=",
		AISummary:        "bm90IGNpcGhlcnRleHQ=",
		RiskLevel:        string(finance.LevelHigh),
		ReportLanguage:   "en",
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create corrupt analysis: %v", err)
	}
	return record
}
