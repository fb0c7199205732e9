// Package services contains business logic for the net worth tracker.
package services

import (
	"math"
	"time"

	apperrors "networth_tracker/internal/errors"
	"networth_tracker/internal/models"
	"networth_tracker/internal/repository"
	"networth_tracker/internal/simulate"
)

// Totals is the result of folding current balances into aggregate numbers.
type Totals struct {
	TotalAssets      float64
	TotalLiabilities float64
	LastUpdated      time.Time
}

// NetWorth returns assets minus liabilities.
func (t Totals) NetWorth() float64 {
	return t.TotalAssets - t.TotalLiabilities
}

// ComputeTotals folds a set of accounts and their balances into asset and
// liability totals. Only balances flagged as current count; an account with
// no current balance contributes zero. The type switch is exhaustive over
// the account type enumeration and an unknown type is a validation error,
// never a silent skip.
//
// Pure function over its inputs: no caching, no shared state.
func ComputeTotals(accounts []*models.Account, balances []*models.Balance) (Totals, error) {
	current := currentByAccount(balances)

	var totals Totals
	for _, acc := range accounts {
		if !acc.IsActive {
			continue
		}
		bal, ok := current[acc.ID]
		if !ok {
			continue
		}

		switch acc.Type {
		case models.AccountTypeDepository, models.AccountTypeInvestment,
			models.AccountTypeManualAsset, models.AccountTypeWallet:
			totals.TotalAssets += bal.Balance
		case models.AccountTypeCredit, models.AccountTypeLoan,
			models.AccountTypeManualLiability:
			// Liabilities are stored as positive magnitudes but tolerate
			// negatively entered values.
			totals.TotalLiabilities += math.Abs(bal.Balance)
		default:
			return Totals{}, apperrors.Validationf("unknown account type %q", acc.Type)
		}

		if bal.BalanceDate.After(totals.LastUpdated) {
			totals.LastUpdated = bal.BalanceDate
		}
	}
	return totals, nil
}

// ComputeBreakdown folds current balances into the fixed-field category
// breakdowns. Asset accounts bucket by their category; liability accounts
// bucket by type/subtype (credit cards, mortgages, other loans, other).
func ComputeBreakdown(accounts []*models.Account, balances []*models.Balance) (models.AssetBreakdown, models.LiabilityBreakdown, error) {
	current := currentByAccount(balances)

	var assets models.AssetBreakdown
	var liabilities models.LiabilityBreakdown

	for _, acc := range accounts {
		if !acc.IsActive {
			continue
		}
		bal, ok := current[acc.ID]
		if !ok {
			continue
		}

		switch acc.Type {
		case models.AccountTypeDepository, models.AccountTypeInvestment,
			models.AccountTypeManualAsset, models.AccountTypeWallet:
			if err := addToCategory(&assets, acc.Category, bal.Balance); err != nil {
				return models.AssetBreakdown{}, models.LiabilityBreakdown{}, err
			}
		case models.AccountTypeCredit:
			liabilities.CreditCards += math.Abs(bal.Balance)
		case models.AccountTypeLoan:
			if acc.Subtype == "mortgage" {
				liabilities.Mortgages += math.Abs(bal.Balance)
			} else {
				liabilities.OtherLoans += math.Abs(bal.Balance)
			}
		case models.AccountTypeManualLiability:
			liabilities.Other += math.Abs(bal.Balance)
		default:
			return models.AssetBreakdown{}, models.LiabilityBreakdown{},
				apperrors.Validationf("unknown account type %q", acc.Type)
		}
	}
	return assets, liabilities, nil
}

// addToCategory routes an asset balance into its breakdown bucket.
func addToCategory(b *models.AssetBreakdown, category models.AssetCategory, amount float64) error {
	switch category {
	case models.CategoryCash:
		b.Cash += amount
	case models.CategoryInvestment:
		b.Investment += amount
	case models.CategoryProperty:
		b.Property += amount
	case models.CategoryVehicle:
		b.Vehicle += amount
	case models.CategoryPreciousMetal:
		b.PreciousMetal += amount
	case models.CategoryDigitalAsset:
		b.DigitalAsset += amount
	case models.CategoryOther:
		b.Other += amount
	default:
		return apperrors.Validationf("unknown asset category %q", category)
	}
	return nil
}

// currentByAccount indexes the current balance per account. At most one
// balance per account is current (enforced by the store); if the input
// violates that, the later entry wins.
func currentByAccount(balances []*models.Balance) map[int64]*models.Balance {
	current := make(map[int64]*models.Balance, len(balances))
	for _, b := range balances {
		if b.IsCurrent {
			current[b.AccountID] = b
		}
	}
	return current
}

// changeLookback is the window the summary's change block covers.
const changeLookback = 30 * 24 * time.Hour

// NetWorthService computes aggregate views from stored accounts and
// balances. Totals are computed per call against fresh data, never cached.
type NetWorthService struct {
	accountRepo *repository.AccountRepository
	balanceRepo *repository.BalanceRepository
}

// NewNetWorthService creates a new NetWorthService.
func NewNetWorthService(accountRepo *repository.AccountRepository, balanceRepo *repository.BalanceRepository) *NetWorthService {
	return &NetWorthService{
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
	}
}

// load fetches a user's active accounts and their current balances.
func (s *NetWorthService) load(userID int64) ([]*models.Account, []*models.Balance, error) {
	accounts, err := s.accountRepo.GetByUserIDActiveOnly(userID)
	if err != nil {
		return nil, nil, err
	}
	balances, err := s.balanceRepo.GetCurrentByUserID(userID)
	if err != nil {
		return nil, nil, err
	}
	return accounts, balances, nil
}

// Summary returns the current net-worth summary with a change block
// comparing against the simulated value thirty days back.
func (s *NetWorthService) Summary(userID int64, now time.Time) (*models.NetWorthSummary, error) {
	accounts, balances, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	totals, err := ComputeTotals(accounts, balances)
	if err != nil {
		return nil, err
	}

	lastUpdated := totals.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = now
	}

	summary := &models.NetWorthSummary{
		NetWorth:         totals.NetWorth(),
		TotalAssets:      totals.TotalAssets,
		TotalLiabilities: totals.TotalLiabilities,
		LastUpdated:      lastUpdated,
	}

	since := now.Add(-changeLookback)
	points, err := simulate.History(simulate.Request{
		Start:             since,
		End:               now,
		Granularity:       models.GranularityDaily,
		TargetNetWorth:    totals.NetWorth(),
		TargetLiabilities: totals.TotalLiabilities,
	})
	if err == nil && len(points) > 1 {
		previous := points[0].NetWorth
		change := &models.NetWorthChange{
			Amount: summary.NetWorth - previous,
			Since:  since,
		}
		if previous != 0 {
			change.Percent = (change.Amount / math.Abs(previous)) * 100
		}
		summary.Change = change
	}

	return summary, nil
}

// Breakdown returns the asset and liability category breakdowns.
func (s *NetWorthService) Breakdown(userID int64) (models.AssetBreakdown, models.LiabilityBreakdown, error) {
	accounts, balances, err := s.load(userID)
	if err != nil {
		return models.AssetBreakdown{}, models.LiabilityBreakdown{}, err
	}
	return ComputeBreakdown(accounts, balances)
}

// History returns a synthetic net-worth series anchored at the user's live
// totals, so the last point always equals the current summary.
func (s *NetWorthService) History(userID int64, start, end time.Time, granularity models.Granularity) ([]models.HistoryPoint, error) {
	accounts, balances, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	totals, err := ComputeTotals(accounts, balances)
	if err != nil {
		return nil, err
	}

	return simulate.History(simulate.Request{
		Start:             start,
		End:               end,
		Granularity:       granularity,
		TargetNetWorth:    totals.NetWorth(),
		TargetLiabilities: totals.TotalLiabilities,
	})
}
