package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"finhealth/internal/logger"
)

// Tax reserve statuses.
const (
	TaxStatusGood = "Good"
	TaxStatusRisk = "Risk"
)

// Compliance alert texts.
const (
	AlertRegistration        = "Revenue exceeds 20L threshold. Ensure GST registration is active."
	AlertInsufficientReserve = "Insufficient net cash flow to cover estimated GST liability."
)

// TaxRules is a flat-rate GST model.
type TaxRules struct {
	Rate                  float64
	RegistrationThreshold float64
}

// DefaultTaxRules is the standard 18% rate with a 2,000,000 registration
// threshold.
func DefaultTaxRules() TaxRules {
	return TaxRules{Rate: 0.18, RegistrationThreshold: 2_000_000}
}

// TaxReport is the outcome of a tax check.
type TaxReport struct {
	EstimatedOutputGST float64  `json:"estimated_output_gst"`
	EstimatedITC       float64  `json:"estimated_itc"`
	NetGSTPayable      float64  `json:"net_gst_payable"`
	TaxReserveStatus   string   `json:"tax_reserve_status"`
	ComplianceAlerts   []string `json:"compliance_alerts"`
	GSTRateApplied     string   `json:"gst_rate_applied"`
}

// EstimateTax applies the default rules to m.
func EstimateTax(m *Snapshot) TaxReport {
	return DefaultTaxRules().Estimate(m)
}

// Estimate computes output tax, input tax credit and the net payable, then
// raises the registration and reserve alerts. A nil snapshot reads as all
// zeros.
func (r TaxRules) Estimate(m *Snapshot) TaxReport {
	var revenue, expenses, net float64
	if m != nil {
		revenue, expenses, net = m.TotalRevenue, m.TotalExpenses, m.NetCashflow
	}

	rate := decimal.NewFromFloat(r.Rate)
	output := decimal.NewFromFloat(revenue).Mul(rate).Round(2)
	itc := decimal.NewFromFloat(expenses).Mul(rate).Round(2)
	payable := decimal.Max(decimal.Zero, output.Sub(itc).Round(2))

	alerts := []string{}
	if revenue > r.RegistrationThreshold {
		alerts = append(alerts, AlertRegistration)
	}

	status := TaxStatusGood
	if decimal.NewFromFloat(net).LessThan(payable) {
		alerts = append(alerts, AlertInsufficientReserve)
		status = TaxStatusRisk
	}

	report := TaxReport{
		EstimatedOutputGST: output.InexactFloat64(),
		EstimatedITC:       itc.InexactFloat64(),
		NetGSTPayable:      payable.InexactFloat64(),
		TaxReserveStatus:   status,
		ComplianceAlerts:   alerts,
		GSTRateApplied:     fmt.Sprintf("%d%%", rate.Mul(decimal.NewFromInt(100)).IntPart()),
	}
	logger.Get().Infow("Tax check completed", "net_gst_payable", report.NetGSTPayable, "status", status)
	return report
}
