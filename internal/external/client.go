package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// apiClient is the shared JSON-over-HTTP plumbing for the real providers.
type apiClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func newAPIClient(baseURL, apiKey string, httpClient *http.Client) apiClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c apiClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// HTTPBankingProvider calls a banking API at GET {base}/accounts/{id}.
type HTTPBankingProvider struct {
	api apiClient
}

// NewHTTPBankingProvider creates a banking provider for the given endpoint.
func NewHTTPBankingProvider(baseURL, apiKey string, httpClient *http.Client) *HTTPBankingProvider {
	return &HTTPBankingProvider{api: newAPIClient(baseURL, apiKey, httpClient)}
}

func (p *HTTPBankingProvider) Name() string { return "Banking API" }

// FetchAccount fetches the account snapshot.
func (p *HTTPBankingProvider) FetchAccount(ctx context.Context, accountID string) (*BankAccount, error) {
	var acct BankAccount
	if err := p.api.getJSON(ctx, "/accounts/"+url.PathEscape(accountID), &acct); err != nil {
		return nil, err
	}
	if acct.AccountID == "" {
		acct.AccountID = accountID
	}
	if acct.Provider == "" {
		acct.Provider = p.Name()
	}
	return &acct, nil
}

// HTTPGSTProvider calls a GST suvidha provider at GET {base}/gstin/{gstin}/filings.
type HTTPGSTProvider struct {
	api apiClient
}

// NewHTTPGSTProvider creates a GST provider for the given endpoint.
func NewHTTPGSTProvider(baseURL, apiKey string, httpClient *http.Client) *HTTPGSTProvider {
	return &HTTPGSTProvider{api: newAPIClient(baseURL, apiKey, httpClient)}
}

func (p *HTTPGSTProvider) Name() string { return "GST Portal API" }

// FetchFilingStatus fetches filing metadata for a GSTIN.
func (p *HTTPGSTProvider) FetchFilingStatus(ctx context.Context, gstin string) (*GSTFiling, error) {
	var f GSTFiling
	if err := p.api.getJSON(ctx, "/gstin/"+url.PathEscape(gstin)+"/filings", &f); err != nil {
		return nil, err
	}
	if f.GSTIN == "" {
		f.GSTIN = gstin
	}
	return &f, nil
}
