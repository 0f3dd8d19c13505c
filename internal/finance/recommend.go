package finance

import "finhealth/internal/logger"

// Product is a banking or NBFC product suggestion.
type Product struct {
	Product     string `json:"product"`
	Provider    string `json:"provider"`
	Suitability string `json:"suitability"`
	Benefit     string `json:"benefit"`
}

var (
	overdraftFacility = Product{
		Product:     "Overdraft Facility",
		Provider:    "Partner Bank A",
		Suitability: "High",
		Benefit:     "Optimize daily liquidity with low-interest rates.",
	}
	expansionTermLoan = Product{
		Product:     "SME Expansion Term Loan",
		Provider:    "NBFC Alpha",
		Suitability: "Medium",
		Benefit:     "Fixed interest rate for long-term machinery or office upgrade.",
	}
	invoiceDiscounting = Product{
		Product:     "Invoice Discounting",
		Provider:    "TradeFin Platform",
		Suitability: "High",
		Benefit:     "Unlock capital tied up in unpaid invoices.",
	}
)

const (
	termLoanMinMargin        = 0.20
	invoiceDiscountingMinRev = 5000
)

// RecommendProducts maps a snapshot and its overall risk onto products.
// The result is never nil.
func RecommendProducts(m *Snapshot, overall Level) []Product {
	out := []Product{}
	if m == nil {
		return out
	}

	if m.NetCashflow > 0 && overall == LevelLow {
		out = append(out, overdraftFacility)
	}
	if m.ProfitMargin() > termLoanMinMargin {
		out = append(out, expansionTermLoan)
	}
	if m.TotalRevenue > invoiceDiscountingMinRev {
		out = append(out, invoiceDiscounting)
	}

	logger.Get().Infow("Product recommendations generated", "risk_level", overall, "count", len(out))
	return out
}
