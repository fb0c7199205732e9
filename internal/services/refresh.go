package services

import (
	"context"
	"fmt"
	"log"

	"networth_tracker/internal/linkfeed"
	"networth_tracker/internal/models"
	"networth_tracker/internal/repository"
)

// RefreshService pulls fresh balances for linked accounts from a balance
// provider and stores them as current snapshots.
type RefreshService struct {
	accountRepo *repository.AccountRepository
	balanceRepo *repository.BalanceRepository
	provider    linkfeed.Provider
}

// NewRefreshService creates a new RefreshService.
func NewRefreshService(accountRepo *repository.AccountRepository, balanceRepo *repository.BalanceRepository, provider linkfeed.Provider) *RefreshService {
	return &RefreshService{
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
		provider:    provider,
	}
}

// RefreshBalances updates the current balance of every linked account for
// the user. Returns the number of accounts updated.
func (s *RefreshService) RefreshBalances(ctx context.Context, userID int64) (int, error) {
	accounts, err := s.accountRepo.GetLinkedByUserID(userID)
	if err != nil {
		return 0, fmt.Errorf("loading linked accounts: %w", err)
	}
	if len(accounts) == 0 {
		return 0, nil
	}

	snapshots := make([]linkfeed.AccountSnapshot, 0, len(accounts))
	for _, acc := range accounts {
		snap := linkfeed.AccountSnapshot{Account: acc}
		current, err := s.balanceRepo.GetCurrentByAccountID(acc.ID)
		if err != nil {
			return 0, fmt.Errorf("loading current balance for account %d: %w", acc.ID, err)
		}
		if current != nil {
			snap.Current = current.Balance
		}
		snapshots = append(snapshots, snap)
	}

	updates, err := s.provider.FetchBalances(ctx, snapshots)
	if err != nil {
		return 0, fmt.Errorf("fetching balances from %s: %w", s.provider.Name(), err)
	}

	updated := 0
	for _, u := range updates {
		_, err := s.balanceRepo.SetCurrent(&models.Balance{
			AccountID:   u.AccountID,
			Balance:     u.Balance,
			Available:   u.Available,
			CreditLimit: u.CreditLimit,
			BalanceDate: u.AsOf,
			Source:      u.Source,
		})
		if err != nil {
			return updated, fmt.Errorf("storing balance for account %d: %w", u.AccountID, err)
		}
		updated++
	}

	log.Printf("Refreshed %d balances via %s", updated, s.provider.Name())
	return updated, nil
}
