package demo

import (
	"math"
	"path/filepath"
	"testing"

	"networth_tracker/internal/auth"
	"networth_tracker/internal/database"
	"networth_tracker/internal/models"
	"networth_tracker/internal/repository"
	"networth_tracker/internal/services"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestSeeder_SeedIfEmpty(t *testing.T) {
	db := newTestDB(t)

	if err := NewSeeder(db).SeedIfEmpty(); err != nil {
		t.Fatalf("SeedIfEmpty failed: %v", err)
	}

	user, err := repository.NewUserRepository(db).GetByEmail("demo@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if user == nil {
		t.Fatal("Demo user not created")
	}
	if !auth.CheckPassword("demo1234", user.PasswordHash) {
		t.Error("Demo user password should be demo1234")
	}
}

func TestSeeder_SeedIfEmpty_SkipsWhenUsersExist(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)

	if _, err := userRepo.Create(&models.User{
		Email:        "existing@example.com",
		PasswordHash: "hash",
		Name:         "Existing",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := NewSeeder(db).SeedIfEmpty(); err != nil {
		t.Fatalf("SeedIfEmpty failed: %v", err)
	}

	count, err := userRepo.CountAll()
	if err != nil {
		t.Fatalf("CountAll failed: %v", err)
	}
	if count != 1 {
		t.Errorf("%d users after skipped seed, want 1", count)
	}
}

func TestSeeder_CoversEveryTypeAndCategory(t *testing.T) {
	db := newTestDB(t)
	if err := NewSeeder(db).SeedIfEmpty(); err != nil {
		t.Fatalf("SeedIfEmpty failed: %v", err)
	}

	user, _ := repository.NewUserRepository(db).GetByEmail("demo@example.com")
	accounts, err := repository.NewAccountRepository(db).GetByUserID(user.ID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}

	types := make(map[models.AccountType]bool)
	categories := make(map[models.AssetCategory]bool)
	for _, acc := range accounts {
		types[acc.Type] = true
		categories[acc.Category] = true
		if err := acc.Validate(); err != nil {
			t.Errorf("Seeded account %q is invalid: %v", acc.Name, err)
		}
	}

	if len(types) != 7 {
		t.Errorf("Seeded %d account types, want all 7", len(types))
	}
	wantCategories := []models.AssetCategory{
		models.CategoryCash, models.CategoryInvestment, models.CategoryProperty,
		models.CategoryVehicle, models.CategoryPreciousMetal,
		models.CategoryDigitalAsset, models.CategoryOther,
	}
	for _, c := range wantCategories {
		if !categories[c] {
			t.Errorf("No seeded account uses category %q", c)
		}
	}
}

func TestSeeder_AggregatesAreConsistent(t *testing.T) {
	db := newTestDB(t)
	if err := NewSeeder(db).SeedIfEmpty(); err != nil {
		t.Fatalf("SeedIfEmpty failed: %v", err)
	}

	user, _ := repository.NewUserRepository(db).GetByEmail("demo@example.com")
	accounts, err := repository.NewAccountRepository(db).GetByUserID(user.ID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	balances, err := repository.NewBalanceRepository(db).GetCurrentByUserID(user.ID)
	if err != nil {
		t.Fatalf("GetCurrentByUserID failed: %v", err)
	}
	if len(balances) != len(accounts) {
		t.Errorf("Every seeded account should have a current balance: %d accounts, %d balances",
			len(accounts), len(balances))
	}

	totals, err := services.ComputeTotals(accounts, balances)
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}
	assets, liabilities, err := services.ComputeBreakdown(accounts, balances)
	if err != nil {
		t.Fatalf("ComputeBreakdown failed: %v", err)
	}

	const epsilon = 1e-6
	if math.Abs(assets.Total()-totals.TotalAssets) > epsilon {
		t.Errorf("Asset breakdown %v != totals %v", assets.Total(), totals.TotalAssets)
	}
	if math.Abs(liabilities.Total()-totals.TotalLiabilities) > epsilon {
		t.Errorf("Liability breakdown %v != totals %v", liabilities.Total(), totals.TotalLiabilities)
	}
	if totals.NetWorth() >= totals.TotalAssets {
		t.Error("Demo portfolio should carry liabilities")
	}
}

func TestSeeder_LinkItemIDsDeterministic(t *testing.T) {
	first := newTestDB(t)
	if err := NewSeeder(first).SeedIfEmpty(); err != nil {
		t.Fatalf("SeedIfEmpty failed: %v", err)
	}
	second := newTestDB(t)
	if err := NewSeeder(second).SeedIfEmpty(); err != nil {
		t.Fatalf("SeedIfEmpty failed: %v", err)
	}

	ids := func(db *database.DB) map[string]string {
		user, _ := repository.NewUserRepository(db).GetByEmail("demo@example.com")
		items, err := repository.NewLinkItemRepository(db).GetByUserID(user.ID)
		if err != nil {
			t.Fatalf("GetByUserID failed: %v", err)
		}
		byInstitution := make(map[string]string, len(items))
		for _, item := range items {
			byInstitution[item.Institution] = item.ID
		}
		return byInstitution
	}

	firstIDs := ids(first)
	secondIDs := ids(second)
	if len(firstIDs) == 0 {
		t.Fatal("No link items seeded")
	}
	for inst, id := range firstIDs {
		if secondIDs[inst] != id {
			t.Errorf("Link item ID for %q differs across seeds: %q vs %q", inst, id, secondIDs[inst])
		}
	}
}
