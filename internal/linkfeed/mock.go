package linkfeed

import (
	"context"
	"time"

	"networth_tracker/internal/models"
	"networth_tracker/internal/simulate"
)

// mockDailyVolatility is the per-refresh standard deviation applied to a
// linked balance by the mock feed.
const mockDailyVolatility = 0.01

// MockProvider fabricates balance updates deterministically: the update for
// an account depends only on the calendar date and the account ID, so
// refreshing twice on the same day is idempotent.
type MockProvider struct {
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewMockProvider creates a new MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{Now: time.Now}
}

// Name implements Provider.
func (p *MockProvider) Name() string { return "mock" }

// FetchBalances implements Provider. Each account's prior balance is
// perturbed by a small shock seeded from today's date and the account ID.
func (p *MockProvider) FetchBalances(_ context.Context, snapshots []AccountSnapshot) ([]BalanceUpdate, error) {
	now := p.Now()
	updates := make([]BalanceUpdate, 0, len(snapshots))

	for _, snap := range snapshots {
		acc := snap.Account
		rng := simulate.NewRand(simulate.DateSeed(now) + acc.ID)
		balance := snap.Current * (1 + rng.Normal(0, mockDailyVolatility))
		if balance < 0 {
			balance = 0
		}

		source := models.SourceLinkedFeed
		if acc.Type == models.AccountTypeWallet {
			source = models.SourceChainRPC
		}

		updates = append(updates, BalanceUpdate{
			AccountID: acc.ID,
			Balance:   balance,
			AsOf:      now,
			Source:    source,
		})
	}
	return updates, nil
}

var _ Provider = (*MockProvider)(nil)
