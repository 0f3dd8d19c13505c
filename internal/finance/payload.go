package finance

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseSnapshot rebuilds a snapshot from an untyped metrics payload such as
// the one a client posts back to the report endpoint. The three headline
// metrics are mandatory; everything else is optional.
func ParseSnapshot(m map[string]any) (*Snapshot, error) {
	var missing []string
	for _, key := range []string{"total_revenue", "total_expenses", "net_cashflow"} {
		if v, ok := m[key]; !ok || v == nil {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingMetricError{Keys: missing}
	}

	snap := &Snapshot{
		TotalRevenue:      signedNumber(m["total_revenue"]),
		TotalExpenses:     signedNumber(m["total_expenses"]),
		NetCashflow:       signedNumber(m["net_cashflow"]),
		CategoryBreakdown: numberMap(m["category_breakdown"]),
		MonthlyCashflow:   numberMap(m["monthly_cashflow"]),
	}
	if v, ok := m["expense_ratio"]; ok && v != nil {
		snap.ExpenseRatio = signedNumber(v)
	} else {
		snap.ExpenseRatio = roundFloat(ExpenseRatio(snap.TotalRevenue, snap.TotalExpenses))
	}
	if v, ok := m["transaction_count"]; ok {
		snap.TransactionCount = int(signedNumber(v))
	}
	if v, ok := m["unparsable_dates"]; ok {
		snap.UnparsableDates = int(signedNumber(v))
	}
	return snap, nil
}

func signedNumber(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		f, _ = x.Float64()
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func numberMap(v any) map[string]float64 {
	out := make(map[string]float64)
	raw, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for k, val := range raw {
		out[k] = signedNumber(val)
	}
	return out
}
