package narrative

import (
	"context"
	"fmt"
	"strings"

	"finhealth/internal/finance"
)

const baselineAdvice = "Maintain liquidity, monitor debt ratios, and optimize operational expenses."

// TemplateGenerator writes a report using only values already present in
// its input. It never fails.
type TemplateGenerator struct{}

func (TemplateGenerator) Name() string { return "template" }

// Generate implements Generator.
func (TemplateGenerator) Generate(_ context.Context, in Input) (Report, error) {
	return Report{
		HealthSummary:              healthSummary(in.Metrics),
		RiskExplanation:            riskExplanation(in.Risk),
		ImprovementRecommendations: recommendations(in.Risk),
	}, nil
}

func healthSummary(m *finance.Snapshot) string {
	if m == nil {
		return "No financial metrics were available for this analysis."
	}
	position := "positive"
	switch {
	case m.NetCashflow < 0:
		position = "negative"
	case m.NetCashflow == 0:
		position = "break-even"
	}
	return fmt.Sprintf(
		"Automated analysis of the uploaded transactions: total revenue of %s against total expenses of %s, "+
			"leaving a %s net cashflow of %s. Expenses amount to an expense ratio of %.2f.",
		money(m.TotalRevenue), money(m.TotalExpenses), position, money(m.NetCashflow), m.ExpenseRatio,
	)
}

func riskExplanation(a *finance.Assessment) string {
	if a == nil {
		return "Risk could not be assessed."
	}
	return fmt.Sprintf(
		"Rule-based risk detection rates overall risk as %s. Profitability is %s: %s. Cashflow is %s: %s. Expense load is %s: %s.",
		a.OverallRisk,
		a.Breakdown.Profitability.Level, a.Breakdown.Profitability.Reason,
		a.Breakdown.Cashflow.Level, a.Breakdown.Cashflow.Reason,
		a.Breakdown.ExpenseLoad.Level, a.Breakdown.ExpenseLoad.Reason,
	)
}

func recommendations(a *finance.Assessment) string {
	var tips []string
	if a != nil {
		if a.Breakdown.Profitability.Level != finance.LevelLow {
			tips = append(tips, "Review pricing and cost of sales to widen the profit margin.")
		}
		if a.Breakdown.Cashflow.Level != finance.LevelLow {
			tips = append(tips, "Tighten receivable collection and defer non-essential spending to restore positive cash flow.")
		}
		if a.Breakdown.ExpenseLoad.Level != finance.LevelLow {
			tips = append(tips, "Audit the largest expense categories and renegotiate recurring costs.")
		}
	}
	tips = append(tips, baselineAdvice)
	return strings.Join(tips, " ")
}
