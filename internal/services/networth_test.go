package services

import (
	"math"
	"testing"
	"time"

	apperrors "networth_tracker/internal/errors"
	"networth_tracker/internal/models"
)

func manualAccount(id int64, accType models.AccountType, category models.AssetCategory) *models.Account {
	return &models.Account{
		ID:       id,
		UserID:   1,
		Name:     string(accType),
		Type:     accType,
		Category: category,
		IsManual: true,
		IsActive: true,
	}
}

func currentBalance(accountID int64, amount float64) *models.Balance {
	return &models.Balance{
		AccountID:   accountID,
		Balance:     amount,
		BalanceDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		IsCurrent:   true,
	}
}

func TestComputeTotals_AssetsAndLiabilities(t *testing.T) {
	accounts := []*models.Account{
		manualAccount(1, models.AccountTypeDepository, models.CategoryCash),
		manualAccount(2, models.AccountTypeCredit, models.CategoryOther),
	}
	balances := []*models.Balance{
		currentBalance(1, 5000),
		currentBalance(2, 1200),
	}

	totals, err := ComputeTotals(accounts, balances)
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}
	if totals.TotalAssets != 5000 {
		t.Errorf("TotalAssets = %v, want 5000", totals.TotalAssets)
	}
	if totals.TotalLiabilities != 1200 {
		t.Errorf("TotalLiabilities = %v, want 1200", totals.TotalLiabilities)
	}
	if totals.NetWorth() != 3800 {
		t.Errorf("NetWorth() = %v, want 3800", totals.NetWorth())
	}
}

func TestComputeTotals_NegativeLiabilityBalance(t *testing.T) {
	accounts := []*models.Account{
		manualAccount(1, models.AccountTypeLoan, models.CategoryOther),
	}
	balances := []*models.Balance{
		currentBalance(1, -18750),
	}

	totals, err := ComputeTotals(accounts, balances)
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}
	if totals.TotalLiabilities != 18750 {
		t.Errorf("TotalLiabilities = %v, want 18750 (absolute value)", totals.TotalLiabilities)
	}
}

func TestComputeTotals_MissingCurrentBalanceContributesZero(t *testing.T) {
	accounts := []*models.Account{
		manualAccount(1, models.AccountTypeDepository, models.CategoryCash),
		manualAccount(2, models.AccountTypeInvestment, models.CategoryInvestment),
	}
	balances := []*models.Balance{
		currentBalance(1, 750),
		// Account 2 has a balance row, but not a current one.
		{AccountID: 2, Balance: 99999, IsCurrent: false},
	}

	totals, err := ComputeTotals(accounts, balances)
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}
	if totals.TotalAssets != 750 {
		t.Errorf("TotalAssets = %v, want 750", totals.TotalAssets)
	}
}

func TestComputeTotals_InactiveAccountSkipped(t *testing.T) {
	inactive := manualAccount(1, models.AccountTypeDepository, models.CategoryCash)
	inactive.IsActive = false

	totals, err := ComputeTotals(
		[]*models.Account{inactive},
		[]*models.Balance{currentBalance(1, 5000)},
	)
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}
	if totals.TotalAssets != 0 {
		t.Errorf("TotalAssets = %v, want 0 for inactive account", totals.TotalAssets)
	}
}

func TestComputeTotals_UnknownTypeIsError(t *testing.T) {
	accounts := []*models.Account{
		manualAccount(1, models.AccountType("hedge_fund"), models.CategoryOther),
	}
	balances := []*models.Balance{currentBalance(1, 100)}

	_, err := ComputeTotals(accounts, balances)
	if err == nil {
		t.Fatal("Expected error for unknown account type")
	}
	if !apperrors.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestComputeTotals_AllAssetTypes(t *testing.T) {
	accounts := []*models.Account{
		manualAccount(1, models.AccountTypeDepository, models.CategoryCash),
		manualAccount(2, models.AccountTypeInvestment, models.CategoryInvestment),
		manualAccount(3, models.AccountTypeManualAsset, models.CategoryProperty),
		manualAccount(4, models.AccountTypeWallet, models.CategoryDigitalAsset),
	}
	balances := []*models.Balance{
		currentBalance(1, 100),
		currentBalance(2, 200),
		currentBalance(3, 300),
		currentBalance(4, 400),
	}

	totals, err := ComputeTotals(accounts, balances)
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}
	if totals.TotalAssets != 1000 {
		t.Errorf("TotalAssets = %v, want 1000", totals.TotalAssets)
	}
	if totals.TotalLiabilities != 0 {
		t.Errorf("TotalLiabilities = %v, want 0", totals.TotalLiabilities)
	}
}

func TestComputeTotals_TracksLastUpdated(t *testing.T) {
	older := currentBalance(1, 100)
	older.BalanceDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	newer := currentBalance(2, 200)
	newer.BalanceDate = time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)

	accounts := []*models.Account{
		manualAccount(1, models.AccountTypeDepository, models.CategoryCash),
		manualAccount(2, models.AccountTypeDepository, models.CategoryCash),
	}

	totals, err := ComputeTotals(accounts, []*models.Balance{older, newer})
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}
	if !totals.LastUpdated.Equal(newer.BalanceDate) {
		t.Errorf("LastUpdated = %v, want %v", totals.LastUpdated, newer.BalanceDate)
	}
}

func TestComputeBreakdown_LiabilityBuckets(t *testing.T) {
	mortgage := manualAccount(2, models.AccountTypeLoan, models.CategoryOther)
	mortgage.Subtype = "mortgage"

	accounts := []*models.Account{
		manualAccount(1, models.AccountTypeCredit, models.CategoryOther),
		mortgage,
		manualAccount(3, models.AccountTypeLoan, models.CategoryOther),
		manualAccount(4, models.AccountTypeManualLiability, models.CategoryOther),
	}
	balances := []*models.Balance{
		currentBalance(1, 3240.80),
		currentBalance(2, 342500),
		currentBalance(3, 18750),
		currentBalance(4, 2000),
	}

	_, liabilities, err := ComputeBreakdown(accounts, balances)
	if err != nil {
		t.Fatalf("ComputeBreakdown failed: %v", err)
	}
	if liabilities.CreditCards != 3240.80 {
		t.Errorf("CreditCards = %v, want 3240.80", liabilities.CreditCards)
	}
	if liabilities.Mortgages != 342500 {
		t.Errorf("Mortgages = %v, want 342500", liabilities.Mortgages)
	}
	if liabilities.OtherLoans != 18750 {
		t.Errorf("OtherLoans = %v, want 18750", liabilities.OtherLoans)
	}
	if liabilities.Other != 2000 {
		t.Errorf("Other = %v, want 2000", liabilities.Other)
	}
}

func TestComputeBreakdown_AssetCategories(t *testing.T) {
	gold := manualAccount(1, models.AccountTypeManualAsset, models.CategoryPreciousMetal)
	car := manualAccount(2, models.AccountTypeManualAsset, models.CategoryVehicle)
	wallet := manualAccount(3, models.AccountTypeWallet, models.CategoryDigitalAsset)

	assets, _, err := ComputeBreakdown(
		[]*models.Account{gold, car, wallet},
		[]*models.Balance{
			currentBalance(1, 12400),
			currentBalance(2, 28500),
			currentBalance(3, 4215.30),
		},
	)
	if err != nil {
		t.Fatalf("ComputeBreakdown failed: %v", err)
	}
	if assets.PreciousMetal != 12400 {
		t.Errorf("PreciousMetal = %v, want 12400", assets.PreciousMetal)
	}
	if assets.Vehicle != 28500 {
		t.Errorf("Vehicle = %v, want 28500", assets.Vehicle)
	}
	if assets.DigitalAsset != 4215.30 {
		t.Errorf("DigitalAsset = %v, want 4215.30", assets.DigitalAsset)
	}
}

func TestComputeBreakdown_ConsistentWithTotals(t *testing.T) {
	mortgage := manualAccount(5, models.AccountTypeLoan, models.CategoryOther)
	mortgage.Subtype = "mortgage"

	accounts := []*models.Account{
		manualAccount(1, models.AccountTypeDepository, models.CategoryCash),
		manualAccount(2, models.AccountTypeInvestment, models.CategoryInvestment),
		manualAccount(3, models.AccountTypeWallet, models.CategoryDigitalAsset),
		manualAccount(4, models.AccountTypeCredit, models.CategoryOther),
		mortgage,
		manualAccount(6, models.AccountTypeManualLiability, models.CategoryOther),
	}
	balances := []*models.Balance{
		currentBalance(1, 8450.25),
		currentBalance(2, 156780.50),
		currentBalance(3, 4215.30),
		currentBalance(4, 3240.80),
		currentBalance(5, 342500),
		currentBalance(6, 2000),
	}

	totals, err := ComputeTotals(accounts, balances)
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}
	assets, liabilities, err := ComputeBreakdown(accounts, balances)
	if err != nil {
		t.Fatalf("ComputeBreakdown failed: %v", err)
	}

	const epsilon = 1e-9
	if diff := math.Abs(assets.Total() - totals.TotalAssets); diff > epsilon {
		t.Errorf("Asset breakdown total %v != aggregate %v", assets.Total(), totals.TotalAssets)
	}
	if diff := math.Abs(liabilities.Total() - totals.TotalLiabilities); diff > epsilon {
		t.Errorf("Liability breakdown total %v != aggregate %v", liabilities.Total(), totals.TotalLiabilities)
	}
}
