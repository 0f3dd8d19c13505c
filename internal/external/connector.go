package external

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"finhealth/internal/logger"
)

// Summary is the combined verification profile for one business. A provider
// that failed leaves its section nil and adds an entry to Errors.
type Summary struct {
	Banking              *BankAccount `json:"banking"`
	TaxAuthority         *GSTFiling   `json:"tax_authority"`
	IntegrationTimestamp time.Time    `json:"integration_timestamp"`
	Errors               []FetchError `json:"errors,omitempty"`
}

// Connector fans out to the banking and GST providers.
type Connector struct {
	banking BankingProvider
	gst     GSTProvider
	timeout time.Duration
	now     func() time.Time
}

// NewConnector creates a Connector. A zero timeout means the caller's
// context alone bounds the calls.
func NewConnector(banking BankingProvider, gst GSTProvider, timeout time.Duration) *Connector {
	return &Connector{banking: banking, gst: gst, timeout: timeout, now: time.Now}
}

// NewDefaultConnector wires HTTP providers for the configured URLs and
// simulated providers for the rest.
func NewDefaultConnector(bankingURL, gstURL, apiKey string, timeout time.Duration) *Connector {
	httpClient := &http.Client{Timeout: timeout}

	var banking BankingProvider = SimulatedBankingProvider{}
	if bankingURL != "" {
		banking = NewHTTPBankingProvider(bankingURL, apiKey, httpClient)
	}
	var gst GSTProvider = SimulatedGSTProvider{}
	if gstURL != "" {
		gst = NewHTTPGSTProvider(gstURL, apiKey, httpClient)
	}
	return NewConnector(banking, gst, timeout)
}

// AccountIDFor derives the bank account reference for a business.
func AccountIDFor(businessID string) string {
	id := []rune(businessID)
	if len(id) > 5 {
		id = id[:5]
	}
	return "ACC-" + string(id)
}

// Summary fetches banking and GST data concurrently. When gstin is empty a
// placeholder derived from businessID is looked up. It never returns an
// error; failures are reported inside the summary.
func (c *Connector) Summary(ctx context.Context, businessID, gstin string) *Summary {
	log := logger.Named("external")
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if gstin == "" {
		gstin = SimulatedGSTIN(businessID)
	}
	accountID := AccountIDFor(businessID)

	log.Infow("Aggregating integrated data", "business_id", businessID, "account_id", accountID, "gstin", gstin)

	summary := &Summary{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		acct, err := c.banking.FetchAccount(ctx, accountID)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Warnw("Banking lookup failed", "provider", c.banking.Name(), "account_id", accountID, "error", err)
			summary.Errors = append(summary.Errors, FetchError{Provider: c.banking.Name(), Subject: accountID, Message: err.Error(), Err: err})
			return
		}
		summary.Banking = acct
	}()
	go func() {
		defer wg.Done()
		filing, err := c.gst.FetchFilingStatus(ctx, gstin)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Warnw("GST lookup failed", "provider", c.gst.Name(), "gstin", gstin, "error", err)
			summary.Errors = append(summary.Errors, FetchError{Provider: c.gst.Name(), Subject: gstin, Message: err.Error(), Err: err})
			return
		}
		summary.TaxAuthority = filing
	}()
	wg.Wait()

	sort.Slice(summary.Errors, func(i, j int) bool {
		return summary.Errors[i].Provider < summary.Errors[j].Provider
	})
	summary.IntegrationTimestamp = c.now().UTC()
	return summary
}
