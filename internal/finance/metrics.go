package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"finhealth/internal/logger"
)

// UnparsableMonth is the monthly-cashflow bucket for rows whose date could
// not be parsed.
const UnparsableMonth = "unparsable"

// Snapshot is the immutable set of metrics derived from one transaction
// table.
type Snapshot struct {
	TotalRevenue      float64            `json:"total_revenue"`
	TotalExpenses     float64            `json:"total_expenses"`
	NetCashflow       float64            `json:"net_cashflow"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
	MonthlyCashflow   map[string]float64 `json:"monthly_cashflow"`
	ExpenseRatio      float64            `json:"expense_ratio"`
	TransactionCount  int                `json:"transaction_count"`
	UnparsableDates   int                `json:"unparsable_dates"`
}

// Months returns the monthly cashflow keys in chronological order, with the
// unparsable bucket last.
func (s *Snapshot) Months() []string {
	months := make([]string, 0, len(s.MonthlyCashflow))
	hasUnparsable := false
	for k := range s.MonthlyCashflow {
		if k == UnparsableMonth {
			hasUnparsable = true
			continue
		}
		months = append(months, k)
	}
	sort.Strings(months)
	if hasUnparsable {
		months = append(months, UnparsableMonth)
	}
	return months
}

// ProfitMargin is net cashflow over revenue, or 0 without revenue.
func (s *Snapshot) ProfitMargin() float64 {
	if s.TotalRevenue <= 0 {
		return 0
	}
	return s.NetCashflow / s.TotalRevenue
}

// ComputeFinancialMetrics validates and normalizes t, then computes every
// metric. Failures come back as *AggregationError; no partial snapshot is
// ever returned.
func ComputeFinancialMetrics(t Table) (*Snapshot, error) {
	log := logger.Get()
	log.Infow("Starting financial metrics computation", "rows", len(t.Rows))

	if err := Validate(t); err != nil {
		log.Errorw("Transaction table validation failed", "error", err)
		return nil, &AggregationError{Stage: "validate", Err: err}
	}

	ledger, err := Normalize(t)
	if err != nil {
		log.Errorw("Transaction table normalization failed", "error", err)
		return nil, &AggregationError{Stage: "normalize", Err: err}
	}

	snap := Summarize(ledger)
	log.Infow("Financial metrics computation completed",
		"total_revenue", snap.TotalRevenue,
		"total_expenses", snap.TotalExpenses,
		"net_cashflow", snap.NetCashflow,
	)
	return snap, nil
}

// Summarize computes a snapshot from an already-normalized ledger.
func Summarize(l Ledger) *Snapshot {
	revenue := sumByType(l, Credit)
	expenses := sumByType(l, Debit)

	monthly := MonthlyCashflow(l)
	unparsable := 0
	for _, tx := range l {
		if tx.Date.IsZero() {
			unparsable++
		}
	}

	return &Snapshot{
		TotalRevenue:      round2(revenue),
		TotalExpenses:     round2(expenses),
		NetCashflow:       round2(revenue.Sub(expenses)),
		CategoryBreakdown: CategoryBreakdown(l),
		MonthlyCashflow:   monthly,
		ExpenseRatio:      roundFloat(ExpenseRatio(revenue.InexactFloat64(), expenses.InexactFloat64())),
		TransactionCount:  len(l),
		UnparsableDates:   unparsable,
	}
}

// TotalRevenue sums credit amounts. An empty ledger yields 0.
func TotalRevenue(l Ledger) float64 {
	revenue := round2(sumByType(l, Credit))
	logger.Get().Debugw("Total revenue calculated", "total_revenue", revenue)
	return revenue
}

// TotalExpenses sums debit amounts.
func TotalExpenses(l Ledger) float64 {
	expenses := round2(sumByType(l, Debit))
	logger.Get().Debugw("Total expenses calculated", "total_expenses", expenses)
	return expenses
}

// NetCashflow is revenue minus expenses and may be negative.
func NetCashflow(l Ledger) float64 {
	net := round2(sumByType(l, Credit).Sub(sumByType(l, Debit)))
	logger.Get().Debugw("Net cashflow calculated", "net_cashflow", net)
	return net
}

// CategoryBreakdown sums amounts per category without regard to direction:
// a category holding both credits and debits reports their gross total.
func CategoryBreakdown(l Ledger) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range l {
		sums[tx.Category] = sums[tx.Category].Add(decimal.NewFromFloat(tx.Amount))
	}

	out := make(map[string]float64, len(sums))
	for k, v := range sums {
		out[k] = round2(v)
	}
	return out
}

// MonthlyCashflow nets credits against debits per YYYY-MM month. Rows
// without a parsable date land in the UnparsableMonth bucket.
func MonthlyCashflow(l Ledger) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range l {
		key := UnparsableMonth
		if !tx.Date.IsZero() {
			key = tx.Date.Format("2006-01")
		}
		amt := decimal.NewFromFloat(tx.Amount)
		if tx.Type == Debit {
			amt = amt.Neg()
		}
		sums[key] = sums[key].Add(amt)
	}

	out := make(map[string]float64, len(sums))
	for k, v := range sums {
		out[k] = round2(v)
	}
	return out
}

// ExpenseRatio is expenses over revenue, or 0 when there is no revenue.
// It is not capped and may exceed 1.
func ExpenseRatio(revenue, expenses float64) float64 {
	if revenue > 0 {
		return expenses / revenue
	}
	return 0
}

func sumByType(l Ledger, t TxType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l {
		if tx.Type == t {
			total = total.Add(decimal.NewFromFloat(tx.Amount))
		}
	}
	return total
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func roundFloat(f float64) float64 {
	return round2(decimal.NewFromFloat(f))
}
