package linkfeed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"

	"networth_tracker/internal/models"
)

// PlaidConfig holds Plaid API configuration.
type PlaidConfig struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures all required fields are present.
func (c *PlaidConfig) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("plaid client ID is required")
	}
	if c.Secret == "" {
		return fmt.Errorf("plaid secret is required")
	}
	if c.AccessToken == "" {
		return fmt.Errorf("plaid access token is required")
	}
	switch c.Environment {
	case "sandbox", "production":
		return nil
	}
	return fmt.Errorf("invalid Plaid environment: must be sandbox or production")
}

// PlaidProvider fetches real balances through the Plaid balance API.
// Linked accounts are matched to Plaid accounts by name; accounts Plaid
// doesn't know are left untouched.
type PlaidProvider struct {
	client      *plaid.APIClient
	accessToken string
}

// NewPlaidProvider creates a Plaid-backed provider with the given configuration.
func NewPlaidProvider(cfg PlaidConfig) (*PlaidProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &PlaidProvider{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
	}, nil
}

// Name implements Provider.
func (p *PlaidProvider) Name() string { return "plaid" }

// FetchBalances implements Provider using Plaid's AccountsBalanceGet.
func (p *PlaidProvider) FetchBalances(ctx context.Context, snapshots []AccountSnapshot) ([]BalanceUpdate, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	request := plaid.NewAccountsBalanceGetRequest(p.accessToken)
	resp, _, err := p.client.PlaidApi.AccountsBalanceGet(ctx).AccountsBalanceGetRequest(*request).Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching balances from Plaid: %w", err)
	}

	byName := make(map[string]plaid.AccountBase)
	for _, acct := range resp.GetAccounts() {
		byName[acct.GetName()] = acct
	}

	now := time.Now()
	updates := make([]BalanceUpdate, 0, len(snapshots))
	for _, snap := range snapshots {
		remote, ok := byName[snap.Account.Name]
		if !ok {
			log.Printf("plaid: no remote account matches %q, skipping", snap.Account.Name)
			continue
		}

		balances := remote.GetBalances()
		update := BalanceUpdate{
			AccountID: snap.Account.ID,
			Balance:   balances.GetCurrent(),
			AsOf:      now,
			Source:    models.SourceLinkedFeed,
		}
		if balances.Available.IsSet() && balances.Available.Get() != nil {
			available := *balances.Available.Get()
			update.Available = &available
		}
		if balances.Limit.IsSet() && balances.Limit.Get() != nil {
			limit := *balances.Limit.Get()
			update.CreditLimit = &limit
		}
		updates = append(updates, update)
	}

	log.Printf("plaid: fetched %d balance updates", len(updates))
	return updates, nil
}

var _ Provider = (*PlaidProvider)(nil)
