// Package narrative produces the human-readable health report that
// accompanies an analysis. An LLM writes it when one is configured; a
// deterministic template covers every other case.
package narrative

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"finhealth/internal/finance"
)

// Report section headings, in render order.
const (
	HeadingHealth          = "OVERALL FINANCIAL HEALTH"
	HeadingRisk            = "RISK ANALYSIS"
	HeadingRecommendations = "IMPROVEMENT RECOMMENDATIONS"
)

// Report is a three-section narrative.
type Report struct {
	HealthSummary              string `json:"health_summary"`
	RiskExplanation            string `json:"risk_explanation"`
	ImprovementRecommendations string `json:"improvement_recommendations"`
}

// Complete reports whether every section has content.
func (r Report) Complete() bool {
	return strings.TrimSpace(r.HealthSummary) != "" &&
		strings.TrimSpace(r.RiskExplanation) != "" &&
		strings.TrimSpace(r.ImprovementRecommendations) != ""
}

// Render lays the report out as plain text under the standard headings.
func Render(r Report) string {
	var b strings.Builder
	b.WriteString(HeadingHealth + "\n")
	b.WriteString(strings.TrimSpace(r.HealthSummary))
	b.WriteString("\n\n" + HeadingRisk + "\n")
	b.WriteString(strings.TrimSpace(r.RiskExplanation))
	b.WriteString("\n\n" + HeadingRecommendations + "\n")
	b.WriteString(strings.TrimSpace(r.ImprovementRecommendations))
	return b.String()
}

// Input is what a generator works from.
type Input struct {
	Metrics *finance.Snapshot
	Risk    *finance.Assessment
}

// Generator writes a report from computed metrics and risk.
type Generator interface {
	Name() string
	Generate(ctx context.Context, in Input) (Report, error)
}

// MetricsContext renders a snapshot as the line-oriented text handed to
// generators.
func MetricsContext(m *finance.Snapshot) string {
	if m == nil {
		return "N/A"
	}
	lines := []string{
		"Total revenue: " + money(m.TotalRevenue),
		"Total expenses: " + money(m.TotalExpenses),
		"Net cashflow: " + money(m.NetCashflow),
		"Expense ratio: " + strconv.FormatFloat(m.ExpenseRatio, 'f', 2, 64),
		fmt.Sprintf("Transactions: %d", m.TransactionCount),
	}

	if len(m.CategoryBreakdown) > 0 {
		cats := make([]string, 0, len(m.CategoryBreakdown))
		for c := range m.CategoryBreakdown {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		parts := make([]string, len(cats))
		for i, c := range cats {
			parts[i] = c + " " + money(m.CategoryBreakdown[c])
		}
		lines = append(lines, "Category totals: "+strings.Join(parts, "; "))
	}

	if months := m.Months(); len(months) > 0 {
		parts := make([]string, len(months))
		for i, k := range months {
			parts[i] = k + " " + money(m.MonthlyCashflow[k])
		}
		lines = append(lines, "Monthly cashflow: "+strings.Join(parts, "; "))
	}
	return strings.Join(lines, "\n")
}

// RiskContext renders an assessment as text.
func RiskContext(a *finance.Assessment) string {
	if a == nil {
		return "N/A"
	}
	return strings.Join([]string{
		"Overall risk: " + string(a.OverallRisk),
		finding("Profitability", a.Breakdown.Profitability),
		finding("Cashflow", a.Breakdown.Cashflow),
		finding("Expense load", a.Breakdown.ExpenseLoad),
	}, "\n")
}

func finding(label string, f finance.Finding) string {
	return fmt.Sprintf("%s: %s (%s)", label, f.Level, f.Reason)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
