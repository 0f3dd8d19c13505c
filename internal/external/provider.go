// Package external fetches third-party verification data (bank account
// status and GST filing history) used to enrich an analysis.
package external

import (
	"context"
	"fmt"
)

// BankAccount is the account snapshot returned by a banking provider.
type BankAccount struct {
	Provider       string  `json:"provider"`
	AccountID      string  `json:"account_id"`
	AccountStatus  string  `json:"account_status"`
	CurrentBalance float64 `json:"current_balance"`
	Currency       string  `json:"currency"`
	LastSync       string  `json:"last_sync"`
	KYCStatus      string  `json:"kyc_status"`
}

// GSTFiling is the filing metadata returned by a GST provider.
type GSTFiling struct {
	GSTIN              string `json:"gstin"`
	FilingFrequency    string `json:"filing_frequency"`
	LastFiledPeriod    string `json:"last_filed_period"`
	ComplianceScore    int    `json:"compliance_score"`
	PendingLitigations int    `json:"pending_litigations"`
	RegistrationDate   string `json:"registration_date"`
}

// FetchError records a failed provider call.
type FetchError struct {
	Provider string `json:"provider"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Err      error  `json:"-"`
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("%s lookup for %s failed: %v", e.Provider, e.Subject, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }

// BankingProvider looks up a business bank account.
type BankingProvider interface {
	Name() string
	FetchAccount(ctx context.Context, accountID string) (*BankAccount, error)
}

// GSTProvider looks up GST filing status.
type GSTProvider interface {
	Name() string
	FetchFilingStatus(ctx context.Context, gstin string) (*GSTFiling, error)
}
