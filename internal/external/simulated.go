package external

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
)

const simulatedSyncTime = "2026-02-06T18:45:00Z"

// SimulatedBankingProvider returns stable, made-up account data derived
// from the account ID. It is used when no banking endpoint is configured.
type SimulatedBankingProvider struct{}

func (SimulatedBankingProvider) Name() string { return "MockBank Global API" }

// FetchAccount returns a balance between 10,000 and 50,000 INR.
func (p SimulatedBankingProvider) FetchAccount(ctx context.Context, accountID string) (*BankAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h := hash64(accountID)
	balance := 10000 + float64(h%4000000)/100
	return &BankAccount{
		Provider:       p.Name(),
		AccountID:      accountID,
		AccountStatus:  "Active",
		CurrentBalance: math.Round(balance*100) / 100,
		Currency:       "INR",
		LastSync:       simulatedSyncTime,
		KYCStatus:      "Verified",
	}, nil
}

// SimulatedGSTProvider returns stable, made-up filing data derived from the
// GSTIN.
type SimulatedGSTProvider struct{}

func (SimulatedGSTProvider) Name() string { return "Mock GST Portal" }

var complianceScores = []int{85, 90, 95, 100}

// FetchFilingStatus returns monthly-filer metadata with one of the standard
// compliance scores.
func (SimulatedGSTProvider) FetchFilingStatus(ctx context.Context, gstin string) (*GSTFiling, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &GSTFiling{
		GSTIN:              gstin,
		FilingFrequency:    "Monthly",
		LastFiledPeriod:    "January 2026",
		ComplianceScore:    complianceScores[hash64(gstin)%uint64(len(complianceScores))],
		PendingLitigations: 0,
		RegistrationDate:   "2020-05-12",
	}, nil
}

// SimulatedGSTIN derives a well-formed placeholder GSTIN for a business.
func SimulatedGSTIN(businessID string) string {
	return fmt.Sprintf("27AAACN%04dA1Z5", 1000+hash64(businessID)%9000)
}

func hash64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
