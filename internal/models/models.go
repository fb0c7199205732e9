// Package models contains the domain models for the net worth tracker.
package models

import (
	"fmt"
	"time"
)

// AccountType classifies how an account contributes to net worth.
type AccountType string

// The closed set of account types. The aggregator switches exhaustively
// over these; anything else is a validation error.
const (
	AccountTypeDepository      AccountType = "depository"
	AccountTypeInvestment      AccountType = "investment"
	AccountTypeCredit          AccountType = "credit"
	AccountTypeLoan            AccountType = "loan"
	AccountTypeManualAsset     AccountType = "manual_asset"
	AccountTypeManualLiability AccountType = "manual_liability"
	AccountTypeWallet          AccountType = "wallet"
)

// ParseAccountType validates and returns an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(s); t {
	case AccountTypeDepository, AccountTypeInvestment, AccountTypeCredit,
		AccountTypeLoan, AccountTypeManualAsset, AccountTypeManualLiability,
		AccountTypeWallet:
		return t, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// IsManualType reports whether the type is one of the manually entered kinds.
func (t AccountType) IsManualType() bool {
	return t == AccountTypeManualAsset || t == AccountTypeManualLiability
}

// AssetCategory groups asset accounts for the breakdown view.
type AssetCategory string

// The closed set of asset categories.
const (
	CategoryCash          AssetCategory = "cash"
	CategoryInvestment    AssetCategory = "investment"
	CategoryProperty      AssetCategory = "property"
	CategoryVehicle       AssetCategory = "vehicle"
	CategoryPreciousMetal AssetCategory = "precious_metal"
	CategoryDigitalAsset  AssetCategory = "digital_asset"
	CategoryOther         AssetCategory = "other"
)

// ParseAssetCategory validates and returns an AssetCategory.
func ParseAssetCategory(s string) (AssetCategory, error) {
	switch c := AssetCategory(s); c {
	case CategoryCash, CategoryInvestment, CategoryProperty, CategoryVehicle,
		CategoryPreciousMetal, CategoryDigitalAsset, CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("unknown asset category %q", s)
}

// BalanceSource identifies where a balance snapshot came from.
type BalanceSource string

// The closed set of balance sources.
const (
	SourceLinkedFeed  BalanceSource = "linked_feed"
	SourceManualEntry BalanceSource = "manual_entry"
	SourceValuation   BalanceSource = "valuation_api"
	SourceChainRPC    BalanceSource = "chain_rpc"
)

// ParseBalanceSource validates and returns a BalanceSource.
func ParseBalanceSource(s string) (BalanceSource, error) {
	switch src := BalanceSource(s); src {
	case SourceLinkedFeed, SourceManualEntry, SourceValuation, SourceChainRPC:
		return src, nil
	}
	return "", fmt.Errorf("unknown balance source %q", s)
}

// Granularity is the sampling interval of a historical series.
type Granularity string

// The four supported sampling granularities.
const (
	GranularityDaily     Granularity = "daily"
	GranularityWeekly    Granularity = "weekly"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
)

// ParseGranularity validates and returns a Granularity. Unknown values are
// an error, never a silent default.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityQuarterly:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// Days returns the fixed sampling interval in days.
func (g Granularity) Days() int {
	switch g {
	case GranularityDaily:
		return 1
	case GranularityWeekly:
		return 7
	case GranularityMonthly:
		return 30
	case GranularityQuarterly:
		return 90
	}
	return 0
}

// User represents a registered user.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents a user session for authentication.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// LinkItem represents a stubbed connection to an external balance feed
// (bank aggregator or chain RPC). IDs are deterministic v5 UUIDs so demo
// seeding is reproducible.
type LinkItem struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Institution string    `json:"institution"`
	CreatedAt   time.Time `json:"created_at"`
}

// Account represents a trackable financial holding.
type Account struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	Name          string        `json:"name"`
	Type          AccountType   `json:"type"`
	Subtype       string        `json:"subtype,omitempty"` // e.g. "checking", "mortgage", "bitcoin"
	Category      AssetCategory `json:"category"`
	LinkItemID    *string       `json:"link_item_id,omitempty"`
	IsManual      bool          `json:"is_manual"`
	IsActive      bool          `json:"is_active"`
	Currency      string        `json:"currency"`
	WalletAddress string        `json:"wallet_address,omitempty"` // wallet accounts only
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Validate checks the account's structural invariants: the type and
// category enumerations, and that exactly one of the linked-item reference
// and the manual flag is set.
func (a *Account) Validate() error {
	if _, err := ParseAccountType(string(a.Type)); err != nil {
		return err
	}
	if _, err := ParseAssetCategory(string(a.Category)); err != nil {
		return err
	}
	linked := a.LinkItemID != nil && *a.LinkItemID != ""
	if linked == a.IsManual {
		return fmt.Errorf("account %q must be either linked or manual, not both or neither", a.Name)
	}
	return nil
}

// Balance is a point-in-time value snapshot for an account.
type Balance struct {
	ID          int64         `json:"id"`
	AccountID   int64         `json:"account_id"`
	Balance     float64       `json:"balance"`
	Available   *float64      `json:"available,omitempty"`
	CreditLimit *float64      `json:"credit_limit,omitempty"`
	BalanceDate time.Time     `json:"balance_date"`
	IsCurrent   bool          `json:"is_current"`
	Source      BalanceSource `json:"source"`
	CreatedAt   time.Time     `json:"created_at"`
}

// HistoryPoint is one sample of a net-worth time series. Computed on
// demand; never persisted.
type HistoryPoint struct {
	Date             time.Time `json:"date"`
	NetWorth         float64   `json:"net_worth"`
	TotalAssets      float64   `json:"total_assets"`
	TotalLiabilities float64   `json:"total_liabilities"`
}

// AssetBreakdown holds asset totals keyed by the closed category set.
// A fixed-field struct so adding a category is a compile-time change.
type AssetBreakdown struct {
	Cash          float64 `json:"cash"`
	Investment    float64 `json:"investment"`
	Property      float64 `json:"property"`
	Vehicle       float64 `json:"vehicle"`
	PreciousMetal float64 `json:"precious_metal"`
	DigitalAsset  float64 `json:"digital_asset"`
	Other         float64 `json:"other"`
}

// Total returns the sum of all asset buckets.
func (b AssetBreakdown) Total() float64 {
	return b.Cash + b.Investment + b.Property + b.Vehicle +
		b.PreciousMetal + b.DigitalAsset + b.Other
}

// LiabilityBreakdown holds liability totals by kind.
type LiabilityBreakdown struct {
	CreditCards float64 `json:"credit_cards"`
	Mortgages   float64 `json:"mortgages"`
	OtherLoans  float64 `json:"other_loans"`
	Other       float64 `json:"other"`
}

// Total returns the sum of all liability buckets.
func (b LiabilityBreakdown) Total() float64 {
	return b.CreditCards + b.Mortgages + b.OtherLoans + b.Other
}

// NetWorthChange describes the movement since a reference date.
type NetWorthChange struct {
	Amount  float64   `json:"amount"`
	Percent float64   `json:"percent"`
	Since   time.Time `json:"since"`
}

// NetWorthSummary is the aggregate view the dashboard cards render.
type NetWorthSummary struct {
	NetWorth         float64         `json:"net_worth"`
	TotalAssets      float64         `json:"total_assets"`
	TotalLiabilities float64         `json:"total_liabilities"`
	LastUpdated      time.Time       `json:"last_updated"`
	Change           *NetWorthChange `json:"change,omitempty"`
}
