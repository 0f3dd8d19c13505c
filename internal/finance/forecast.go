package finance

import (
	"math"

	"github.com/shopspring/decimal"

	"finhealth/internal/logger"
)

// Forecast growth assumptions per projected month.
const (
	ForecastMonths       = 3
	RevenueGrowthPerStep = 0.05
	ExpenseGrowthPerStep = 0.02
)

// Projection is one projected month.
type Projection struct {
	Month             int     `json:"month"`
	ProjectedRevenue  float64 `json:"projected_revenue"`
	ProjectedExpenses float64 `json:"projected_expenses"`
	ProjectedNet      float64 `json:"projected_net"`
}

// ProjectCashflow projects three months of linear growth from the current
// totals.
func ProjectCashflow(revenue, expenses float64) []Projection {
	log := logger.Get()
	if !finite(revenue) || !finite(expenses) {
		log.Warnw("Incomplete data for forecasting; using zeroed defaults",
			"revenue", revenue,
			"expenses", expenses,
		)
		if !finite(revenue) {
			revenue = 0
		}
		if !finite(expenses) {
			expenses = 0
		}
	}

	rev := decimal.NewFromFloat(revenue)
	exp := decimal.NewFromFloat(expenses)
	one := decimal.NewFromInt(1)

	out := make([]Projection, 0, ForecastMonths)
	for i := 1; i <= ForecastMonths; i++ {
		step := decimal.NewFromInt(int64(i))
		pr := rev.Mul(one.Add(decimal.NewFromFloat(RevenueGrowthPerStep).Mul(step))).Round(2)
		pe := exp.Mul(one.Add(decimal.NewFromFloat(ExpenseGrowthPerStep).Mul(step))).Round(2)
		out = append(out, Projection{
			Month:             i,
			ProjectedRevenue:  pr.InexactFloat64(),
			ProjectedExpenses: pe.InexactFloat64(),
			ProjectedNet:      round2(pr.Sub(pe)),
		})
	}

	log.Infow("Forecasting complete", "month_3_projected_net", out[len(out)-1].ProjectedNet)
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
