// Package demo provides demo data seeding for demonstration deployments.
package demo

import (
	"log"
	"time"

	"github.com/google/uuid"

	"networth_tracker/internal/auth"
	"networth_tracker/internal/database"
	"networth_tracker/internal/models"
	"networth_tracker/internal/repository"
)

// linkItemNamespace is the UUID namespace for deterministic link item IDs.
// v5 UUIDs keep seeding reproducible across runs.
var linkItemNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Seeder seeds the database with demo data.
type Seeder struct {
	db           *database.DB
	userRepo     *repository.UserRepository
	linkItemRepo *repository.LinkItemRepository
	accountRepo  *repository.AccountRepository
	balanceRepo  *repository.BalanceRepository
}

// NewSeeder creates a new demo data seeder.
func NewSeeder(db *database.DB) *Seeder {
	return &Seeder{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		linkItemRepo: repository.NewLinkItemRepository(db),
		accountRepo:  repository.NewAccountRepository(db),
		balanceRepo:  repository.NewBalanceRepository(db),
	}
}

// SeedIfEmpty seeds demo data if the database is empty.
func (s *Seeder) SeedIfEmpty() error {
	count, err := s.userRepo.CountAll()
	if err != nil {
		return err
	}

	if count > 0 {
		log.Println("Database already has users, skipping demo seed")
		return nil
	}

	log.Println("Seeding demo data...")
	return s.Seed()
}

// demoAccount describes one fixture account with its current balance.
type demoAccount struct {
	name          string
	accType       models.AccountType
	subtype       string
	category      models.AssetCategory
	institution   string // empty for manual accounts
	walletAddress string
	balance       float64
	available     *float64
	creditLimit   *float64
	source        models.BalanceSource
}

// Seed creates the demo user with a fixture portfolio covering every
// account type and asset category.
func (s *Seeder) Seed() error {
	passwordHash, err := auth.HashPassword("demo1234")
	if err != nil {
		return err
	}

	demoUser := &models.User{
		Email:        "demo@example.com",
		PasswordHash: passwordHash,
		Name:         "Demo User",
	}

	userID, err := s.userRepo.Create(demoUser)
	if err != nil {
		return err
	}
	log.Printf("Created demo user (ID: %d)", userID)

	institutions := []string{"Chase", "Vanguard", "Fidelity", "Solana Mainnet"}
	linkItemIDs := make(map[string]string)
	for _, inst := range institutions {
		item := &models.LinkItem{
			ID:          uuid.NewSHA1(linkItemNamespace, []byte(inst)).String(),
			UserID:      userID,
			Institution: inst,
		}
		if err := s.linkItemRepo.Create(item); err != nil {
			return err
		}
		linkItemIDs[inst] = item.ID
	}
	log.Printf("Created %d link items", len(institutions))

	available := func(v float64) *float64 { return &v }

	fixtures := []demoAccount{
		{name: "Chase Checking", accType: models.AccountTypeDepository, subtype: "checking",
			category: models.CategoryCash, institution: "Chase",
			balance: 8450.25, available: available(8450.25), source: models.SourceLinkedFeed},
		{name: "Chase Savings", accType: models.AccountTypeDepository, subtype: "savings",
			category: models.CategoryCash, institution: "Chase",
			balance: 24300.00, available: available(24300.00), source: models.SourceLinkedFeed},
		{name: "Vanguard Brokerage", accType: models.AccountTypeInvestment, subtype: "brokerage",
			category: models.CategoryInvestment, institution: "Vanguard",
			balance: 156780.50, source: models.SourceLinkedFeed},
		{name: "Fidelity 401k", accType: models.AccountTypeInvestment, subtype: "401k",
			category: models.CategoryInvestment, institution: "Fidelity",
			balance: 89200.75, source: models.SourceLinkedFeed},
		{name: "Chase Sapphire", accType: models.AccountTypeCredit, subtype: "credit_card",
			category: models.CategoryOther, institution: "Chase",
			balance: 3240.80, creditLimit: available(25000), source: models.SourceLinkedFeed},
		{name: "Home Mortgage", accType: models.AccountTypeLoan, subtype: "mortgage",
			category: models.CategoryOther, institution: "Chase",
			balance: 342500.00, source: models.SourceLinkedFeed},
		{name: "Auto Loan", accType: models.AccountTypeLoan, subtype: "auto",
			category: models.CategoryOther, institution: "Chase",
			balance: 18750.00, source: models.SourceLinkedFeed},
		{name: "Primary Residence", accType: models.AccountTypeManualAsset, subtype: "real_estate",
			category: models.CategoryProperty,
			balance: 485000.00, source: models.SourceValuation},
		{name: "2021 Tesla Model 3", accType: models.AccountTypeManualAsset, subtype: "vehicle",
			category: models.CategoryVehicle,
			balance: 28500.00, source: models.SourceValuation},
		{name: "Gold Bullion", accType: models.AccountTypeManualAsset, subtype: "gold",
			category: models.CategoryPreciousMetal,
			balance: 12400.00, source: models.SourceValuation},
		{name: "Domain Portfolio", accType: models.AccountTypeManualAsset, subtype: "domains",
			category: models.CategoryDigitalAsset,
			balance: 5600.00, source: models.SourceManualEntry},
		{name: "Phantom Wallet", accType: models.AccountTypeWallet, subtype: "solana",
			category: models.CategoryDigitalAsset, institution: "Solana Mainnet",
			walletAddress: "DemoWa11etAddre55ByNetWorthTrackerSeed11111",
			balance:       4215.30, source: models.SourceChainRPC},
		{name: "Family Loan", accType: models.AccountTypeManualLiability, subtype: "personal",
			category: models.CategoryOther,
			balance: 2000.00, source: models.SourceManualEntry},
	}

	balanceDate := time.Now().UTC().Truncate(24 * time.Hour)
	for _, f := range fixtures {
		account := &models.Account{
			UserID:        userID,
			Name:          f.name,
			Type:          f.accType,
			Subtype:       f.subtype,
			Category:      f.category,
			IsActive:      true,
			Currency:      "USD",
			WalletAddress: f.walletAddress,
		}
		if f.institution != "" {
			id := linkItemIDs[f.institution]
			account.LinkItemID = &id
		} else {
			account.IsManual = true
		}

		accountID, err := s.accountRepo.Create(account)
		if err != nil {
			return err
		}

		_, err = s.balanceRepo.SetCurrent(&models.Balance{
			AccountID:   accountID,
			Balance:     f.balance,
			Available:   f.available,
			CreditLimit: f.creditLimit,
			BalanceDate: balanceDate,
			Source:      f.source,
		})
		if err != nil {
			return err
		}
	}
	log.Printf("Created %d accounts with current balances", len(fixtures))

	log.Println("========================================")
	log.Println("DEMO MODE ENABLED")
	log.Println("Login with:")
	log.Println("Email:    demo@example.com")
	log.Println("Password: demo1234")
	log.Println("========================================")

	return nil
}
