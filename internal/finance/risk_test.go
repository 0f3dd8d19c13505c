package finance

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func snapshot(revenue, expenses float64) *Snapshot {
	return &Snapshot{
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		NetCashflow:   revenue - expenses,
		ExpenseRatio:  ExpenseRatio(revenue, expenses),
	}
}

func TestEvaluate(t *testing.T) {
	ev := NewEvaluator(DefaultThresholds())

	t.Run("scenario_b_thin_margin", func(t *testing.T) {
		res, err := ev.Evaluate(snapshot(10000, 9500))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p := res.Breakdown.Profitability
		if p.Level != LevelHigh {
			t.Errorf("expected profitability High, got %s", p.Level)
		}
		if p.Ratio == nil || *p.Ratio != 0.05 {
			t.Errorf("expected margin ratio 0.05, got %v", p.Ratio)
		}
		if res.OverallRisk != LevelHigh {
			t.Errorf("expected overall High, got %s", res.OverallRisk)
		}
	})

	t.Run("scenario_c_medium_overall", func(t *testing.T) {
		res, err := ev.Evaluate(snapshot(10000, 7000))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b := res.Breakdown
		if b.Profitability.Level != LevelLow {
			t.Errorf("expected profitability Low, got %s", b.Profitability.Level)
		}
		if b.ExpenseLoad.Level != LevelMedium {
			t.Errorf("expected expense load Medium, got %s", b.ExpenseLoad.Level)
		}
		if b.ExpenseLoad.Ratio == nil || *b.ExpenseLoad.Ratio != 0.7 {
			t.Errorf("expected expense ratio 0.7, got %v", b.ExpenseLoad.Ratio)
		}
		if b.Cashflow.Level != LevelLow {
			t.Errorf("expected cashflow Low, got %s", b.Cashflow.Level)
		}
		if res.OverallRisk != LevelMedium {
			t.Errorf("expected overall Medium, got %s", res.OverallRisk)
		}
	})

	t.Run("scenario_e_no_revenue", func(t *testing.T) {
		for _, s := range []*Snapshot{snapshot(0, 0), snapshot(0, 500), {NetCashflow: 1000}} {
			res, err := ev.Evaluate(s)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			b := res.Breakdown
			if b.Profitability.Level != LevelHigh || !strings.Contains(b.Profitability.Reason, "revenue") {
				t.Errorf("expected profitability High mentioning revenue, got %+v", b.Profitability)
			}
			if b.ExpenseLoad.Level != LevelHigh || !strings.Contains(b.ExpenseLoad.Reason, "revenue") {
				t.Errorf("expected expense load High mentioning revenue, got %+v", b.ExpenseLoad)
			}
			if b.Profitability.Ratio != nil || b.ExpenseLoad.Ratio != nil {
				t.Error("expected no ratios without revenue")
			}
			if res.OverallRisk != LevelHigh {
				t.Errorf("expected overall High, got %s", res.OverallRisk)
			}
		}
	})

	t.Run("healthy_business_low", func(t *testing.T) {
		res, err := ev.Evaluate(snapshot(10000, 5000))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.OverallRisk != LevelLow {
			t.Errorf("expected overall Low, got %s", res.OverallRisk)
		}
	})

	t.Run("nil_snapshot", func(t *testing.T) {
		_, err := ev.Evaluate(nil)
		var me *MissingMetricError
		if !errors.As(err, &me) {
			t.Fatalf("expected *MissingMetricError, got %v", err)
		}
	})
}

func TestAssessBoundaries(t *testing.T) {
	ev := NewEvaluator(DefaultThresholds())

	margins := []struct {
		expenses float64
		want     Level
	}{
		{9001, LevelHigh},   // 9.99%
		{9000, LevelMedium}, // exactly 10%
		{8001, LevelMedium}, // 19.99%
		{8000, LevelLow},    // exactly 20%
	}
	for _, m := range margins {
		if got := ev.AssessProfitability(10000, m.expenses).Level; got != m.want {
			t.Errorf("profitability with expenses %v: expected %s, got %s", m.expenses, m.want, got)
		}
	}

	ratios := []struct {
		expenses float64
		want     Level
	}{
		{6000, LevelLow},    // exactly 0.60
		{6001, LevelMedium}, // just above 0.60
		{8000, LevelMedium}, // exactly 0.80
		{8001, LevelHigh},   // just above 0.80
	}
	for _, r := range ratios {
		if got := ev.AssessExpenseLoad(10000, r.expenses).Level; got != r.want {
			t.Errorf("expense load with expenses %v: expected %s, got %s", r.expenses, r.want, got)
		}
	}

	flows := map[float64]Level{-0.01: LevelHigh, 0: LevelMedium, 0.01: LevelLow}
	for net, want := range flows {
		if got := ev.AssessCashflow(net).Level; got != want {
			t.Errorf("cashflow %v: expected %s, got %s", net, want, got)
		}
	}
}

func TestNegativeRevenue(t *testing.T) {
	ev := NewEvaluator(DefaultThresholds())

	p := ev.AssessProfitability(-100, 50)
	if p.Level != LevelHigh {
		t.Errorf("expected profitability %s, got %s", LevelHigh, p.Level)
	}
	if p.Ratio != nil {
		t.Errorf("expected no ratio, got %v", *p.Ratio)
	}

	e := ev.AssessExpenseLoad(-100, 50)
	if e.Level != LevelHigh {
		t.Errorf("expected expense load %s, got %s", LevelHigh, e.Level)
	}
	if e.Ratio != nil {
		t.Errorf("expected no ratio, got %v", *e.Ratio)
	}
}

func TestAggregateLevels(t *testing.T) {
	f := func(l Level) Finding { return Finding{Level: l} }
	tests := []struct {
		name string
		in   []Finding
		want Level
	}{
		{"none", nil, LevelLow},
		{"all_low", []Finding{f(LevelLow), f(LevelLow), f(LevelLow)}, LevelLow},
		{"one_medium", []Finding{f(LevelLow), f(LevelMedium), f(LevelLow)}, LevelMedium},
		{"high_wins_last", []Finding{f(LevelMedium), f(LevelLow), f(LevelHigh)}, LevelHigh},
		{"high_wins_first", []Finding{f(LevelHigh), f(LevelMedium), f(LevelLow)}, LevelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AggregateLevels(tt.in...); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestThresholds(t *testing.T) {
	t.Run("alternate_set_changes_levels", func(t *testing.T) {
		strict, err := NewThresholds(0.35, 0.50, 0.40, 0.60, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		res, err := NewEvaluator(strict).Evaluate(snapshot(10000, 7000))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Breakdown.Profitability.Level != LevelHigh {
			t.Errorf("expected profitability High under strict thresholds, got %s", res.Breakdown.Profitability.Level)
		}
		if res.Breakdown.ExpenseLoad.Level != LevelHigh {
			t.Errorf("expected expense load High under strict thresholds, got %s", res.Breakdown.ExpenseLoad.Level)
		}
	})

	t.Run("rejects_inverted_bounds", func(t *testing.T) {
		if _, err := NewThresholds(0.3, 0.2, 0.6, 0.8, 0); err == nil {
			t.Error("expected error for inverted margin bounds")
		}
		if _, err := NewThresholds(0.1, 0.2, 0.9, 0.8, 0); err == nil {
			t.Error("expected error for inverted ratio bounds")
		}
	})

	t.Run("yaml_partial_override", func(t *testing.T) {
		th, err := ParseThresholds([]byte("profit_margin:\n  high: 0.25\nexpense_ratio:\n  medium: 0.5\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if th.ProfitMarginLow() != 0.25 {
			t.Errorf("expected low margin bound 0.25, got %v", th.ProfitMarginLow())
		}
		if th.ProfitMarginMedium() != 0.10 {
			t.Errorf("expected default medium margin bound 0.10, got %v", th.ProfitMarginMedium())
		}
		if th.ExpenseRatioMedium() != 0.5 {
			t.Errorf("expected medium ratio bound 0.5, got %v", th.ExpenseRatioMedium())
		}
		if th.ExpenseRatioHigh() != 0.80 {
			t.Errorf("expected default high ratio bound 0.80, got %v", th.ExpenseRatioHigh())
		}
	})

	t.Run("load_from_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "thresholds.yaml")
		data := "profit_margin:\n  high: 0.3\n  medium: 0.15\ncashflow:\n  negative: 100\nexpense_ratio:\n  high: 0.9\n  medium: 0.7\n"
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		th, err := LoadThresholds(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if th.CashflowFloor() != 100 {
			t.Errorf("expected cashflow floor 100, got %v", th.CashflowFloor())
		}
		if got := NewEvaluator(th).AssessCashflow(50).Level; got != LevelHigh {
			t.Errorf("expected cashflow below floor to be High, got %s", got)
		}
	})

	t.Run("load_missing_file", func(t *testing.T) {
		if _, err := LoadThresholds(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("evaluator_copy_is_isolated", func(t *testing.T) {
		ev := NewEvaluator(DefaultThresholds())
		th := ev.Thresholds()
		th.marginLow = 0.99
		if ev.Thresholds().ProfitMarginLow() != 0.20 {
			t.Error("expected evaluator thresholds to be unaffected by copies")
		}
	})
}
