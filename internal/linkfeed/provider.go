// Package linkfeed supplies fresh balances for externally linked accounts.
//
// Real aggregator integration is optional: deployments without Plaid
// credentials run on the deterministic mock provider, which is also what
// demo mode uses.
package linkfeed

import (
	"context"
	"time"

	"networth_tracker/internal/models"
)

// AccountSnapshot pairs a linked account with its last known balance.
type AccountSnapshot struct {
	Account *models.Account
	Current float64
}

// BalanceUpdate is a fresh balance for one account.
type BalanceUpdate struct {
	AccountID   int64
	Balance     float64
	Available   *float64
	CreditLimit *float64
	AsOf        time.Time
	Source      models.BalanceSource
}

// Provider fetches fresh balances for a set of linked accounts.
type Provider interface {
	// FetchBalances returns updates for the given accounts. Accounts the
	// provider cannot resolve are omitted, not errors.
	FetchBalances(ctx context.Context, snapshots []AccountSnapshot) ([]BalanceUpdate, error)

	// Name identifies the provider in logs.
	Name() string
}
