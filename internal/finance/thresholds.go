package finance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Thresholds holds the cut-offs used by the risk classifiers. The zero value
// is not useful; build one with DefaultThresholds, NewThresholds or
// LoadThresholds. Fields are unexported so a Thresholds value cannot change
// once an Evaluator owns it.
type Thresholds struct {
	marginMedium  float64 // margins below this are High
	marginLow     float64 // margins at or above this are Low
	ratioMedium   float64 // expense ratios above this are at least Medium
	ratioHigh     float64 // expense ratios above this are High
	cashflowFloor float64 // net cashflow below this is High, equal is Medium
}

// DefaultThresholds returns the standard threshold set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		marginMedium:  0.10,
		marginLow:     0.20,
		ratioMedium:   0.60,
		ratioHigh:     0.80,
		cashflowFloor: 0,
	}
}

// NewThresholds builds a validated threshold set.
func NewThresholds(marginMedium, marginLow, ratioMedium, ratioHigh, cashflowFloor float64) (Thresholds, error) {
	if marginMedium > marginLow {
		return Thresholds{}, fmt.Errorf("profit margin medium threshold %.2f exceeds low threshold %.2f", marginMedium, marginLow)
	}
	if ratioMedium > ratioHigh {
		return Thresholds{}, fmt.Errorf("expense ratio medium threshold %.2f exceeds high threshold %.2f", ratioMedium, ratioHigh)
	}
	return Thresholds{
		marginMedium:  marginMedium,
		marginLow:     marginLow,
		ratioMedium:   ratioMedium,
		ratioHigh:     ratioHigh,
		cashflowFloor: cashflowFloor,
	}, nil
}

func (t Thresholds) ProfitMarginMedium() float64 { return t.marginMedium }
func (t Thresholds) ProfitMarginLow() float64    { return t.marginLow }
func (t Thresholds) ExpenseRatioMedium() float64 { return t.ratioMedium }
func (t Thresholds) ExpenseRatioHigh() float64   { return t.ratioHigh }
func (t Thresholds) CashflowFloor() float64      { return t.cashflowFloor }

// thresholdsFile is the YAML layout:
//
//	profit_margin: {high: 0.20, medium: 0.10}
//	cashflow:      {negative: 0}
//	expense_ratio: {high: 0.80, medium: 0.60}
type thresholdsFile struct {
	ProfitMargin struct {
		High   float64 `yaml:"high"`
		Medium float64 `yaml:"medium"`
	} `yaml:"profit_margin"`
	Cashflow struct {
		Negative float64 `yaml:"negative"`
	} `yaml:"cashflow"`
	ExpenseRatio struct {
		High   float64 `yaml:"high"`
		Medium float64 `yaml:"medium"`
	} `yaml:"expense_ratio"`
}

// LoadThresholds reads a YAML threshold file. Keys left out of the file
// keep their default values.
func LoadThresholds(path string) (Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, fmt.Errorf("reading thresholds file: %w", err)
	}
	return ParseThresholds(data)
}

// ParseThresholds decodes YAML threshold data on top of the defaults.
func ParseThresholds(data []byte) (Thresholds, error) {
	def := DefaultThresholds()
	var f thresholdsFile
	f.ProfitMargin.High = def.marginLow
	f.ProfitMargin.Medium = def.marginMedium
	f.Cashflow.Negative = def.cashflowFloor
	f.ExpenseRatio.High = def.ratioHigh
	f.ExpenseRatio.Medium = def.ratioMedium

	if err := yaml.Unmarshal(data, &f); err != nil {
		return Thresholds{}, fmt.Errorf("decoding thresholds: %w", err)
	}
	return NewThresholds(f.ProfitMargin.Medium, f.ProfitMargin.High, f.ExpenseRatio.Medium, f.ExpenseRatio.High, f.Cashflow.Negative)
}
