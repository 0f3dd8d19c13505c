package finance

import (
	"fmt"

	"finhealth/internal/logger"
)

// Level is a risk severity.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

func (l Level) severity() int {
	switch l {
	case LevelHigh:
		return 2
	case LevelMedium:
		return 1
	default:
		return 0
	}
}

// Finding is the outcome of one risk classifier. Ratio is set only when the
// classifier computed one.
type Finding struct {
	Level  Level    `json:"level"`
	Reason string   `json:"reason"`
	Ratio  *float64 `json:"ratio,omitempty"`
}

// Breakdown holds the three independent findings.
type Breakdown struct {
	Profitability Finding `json:"profitability"`
	Cashflow      Finding `json:"cashflow"`
	ExpenseLoad   Finding `json:"expense_load"`
}

// Assessment is the full risk picture for one snapshot.
type Assessment struct {
	OverallRisk Level     `json:"overall_risk"`
	Breakdown   Breakdown `json:"risk_breakdown"`
}

// Evaluator classifies snapshots against a fixed threshold set.
type Evaluator struct {
	th Thresholds
}

// NewEvaluator creates an Evaluator that owns th.
func NewEvaluator(th Thresholds) *Evaluator {
	return &Evaluator{th: th}
}

// Thresholds returns a copy of the evaluator's thresholds.
func (e *Evaluator) Thresholds() Thresholds { return e.th }

// Evaluate runs all three classifiers and reduces them to an overall level.
func (e *Evaluator) Evaluate(m *Snapshot) (*Assessment, error) {
	if m == nil {
		return nil, &MissingMetricError{Keys: []string{"total_revenue", "total_expenses", "net_cashflow"}}
	}

	b := Breakdown{
		Profitability: e.AssessProfitability(m.TotalRevenue, m.TotalExpenses),
		Cashflow:      e.AssessCashflow(m.NetCashflow),
		ExpenseLoad:   e.AssessExpenseLoad(m.TotalRevenue, m.TotalExpenses),
	}
	overall := AggregateLevels(b.Profitability, b.Cashflow, b.ExpenseLoad)

	logger.Get().Infow("Risk evaluation completed",
		"overall_risk", overall,
		"profitability", b.Profitability.Level,
		"cashflow", b.Cashflow.Level,
		"expense_load", b.ExpenseLoad.Level,
	)
	return &Assessment{OverallRisk: overall, Breakdown: b}, nil
}

// AssessProfitability classifies the profit margin. Without revenue it
// short-circuits to High instead of dividing. Negative revenue, which only a
// hand-built report payload can carry, takes the same branch since its
// margin would read as healthy.
func (e *Evaluator) AssessProfitability(revenue, expenses float64) Finding {
	if revenue <= 0 {
		return Finding{Level: LevelHigh, Reason: "No revenue recorded"}
	}

	margin := (revenue - expenses) / revenue

	var level Level
	switch {
	case margin < e.th.marginMedium:
		level = LevelHigh
	case margin < e.th.marginLow:
		level = LevelMedium
	default:
		level = LevelLow
	}

	ratio := roundFloat(margin)
	return Finding{
		Level:  level,
		Reason: fmt.Sprintf("Profit margin at %.1f%%", margin*100),
		Ratio:  &ratio,
	}
}

// AssessCashflow classifies the sign of net cashflow.
func (e *Evaluator) AssessCashflow(net float64) Finding {
	switch {
	case net < e.th.cashflowFloor:
		return Finding{Level: LevelHigh, Reason: "Negative cash flow"}
	case net == e.th.cashflowFloor:
		return Finding{Level: LevelMedium, Reason: "Break-even cash flow"}
	default:
		return Finding{Level: LevelLow, Reason: "Positive cash flow"}
	}
}

// AssessExpenseLoad classifies the expense ratio. Without revenue, zero or
// negative, it short-circuits to High.
func (e *Evaluator) AssessExpenseLoad(revenue, expenses float64) Finding {
	if revenue <= 0 {
		return Finding{Level: LevelHigh, Reason: "Expenses without revenue"}
	}

	r := expenses / revenue

	var level Level
	switch {
	case r > e.th.ratioHigh:
		level = LevelHigh
	case r > e.th.ratioMedium:
		level = LevelMedium
	default:
		level = LevelLow
	}

	ratio := roundFloat(r)
	return Finding{
		Level:  level,
		Reason: fmt.Sprintf("Expenses are %.1f%% of revenue", r*100),
		Ratio:  &ratio,
	}
}

// AggregateLevels returns the most severe level among findings, or Low when
// there are none.
func AggregateLevels(findings ...Finding) Level {
	worst := LevelLow
	for _, f := range findings {
		if f.Level.severity() > worst.severity() {
			worst = f.Level
		}
	}
	return worst
}
