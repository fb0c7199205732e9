// Package repository provides database access for the net worth tracker.
package repository

import (
	"database/sql"
	"errors"

	"networth_tracker/internal/database"
	"networth_tracker/internal/models"
)

// AccountRepository handles account database operations.
type AccountRepository struct {
	db *database.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, name, type, subtype, category, link_item_id,
	is_manual, is_active, currency, wallet_address, created_at, updated_at`

// Create inserts a new account and returns its ID. The account must pass
// structural validation first.
func (r *AccountRepository) Create(account *models.Account) (int64, error) {
	if err := account.Validate(); err != nil {
		return 0, err
	}
	result, err := r.db.Exec(`
		INSERT INTO accounts (user_id, name, type, subtype, category, link_item_id, is_manual, is_active, currency, wallet_address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, account.UserID, account.Name, string(account.Type), account.Subtype,
		string(account.Category), account.LinkItemID, boolToInt(account.IsManual),
		boolToInt(account.IsActive), account.Currency, account.WalletAddress)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetByID retrieves an account by ID. Returns nil if not found.
func (r *AccountRepository) GetByID(id int64) (*models.Account, error) {
	row := r.db.QueryRow(`
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = ?
	`, id)

	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetByUserID retrieves all accounts for a user, sorted by name.
func (r *AccountRepository) GetByUserID(userID int64) ([]*models.Account, error) {
	return r.queryAccounts(`
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = ?
		ORDER BY name ASC
	`, userID)
}

// GetByUserIDActiveOnly retrieves only active accounts for a user.
func (r *AccountRepository) GetByUserIDActiveOnly(userID int64) ([]*models.Account, error) {
	return r.queryAccounts(`
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = ? AND is_active = 1
		ORDER BY name ASC
	`, userID)
}

// GetLinkedByUserID retrieves active externally-linked accounts for a user.
func (r *AccountRepository) GetLinkedByUserID(userID int64) ([]*models.Account, error) {
	return r.queryAccounts(`
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = ? AND is_active = 1 AND is_manual = 0
		ORDER BY name ASC
	`, userID)
}

// scanner abstracts sql.Row and sql.Rows for scanAccount.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*models.Account, error) {
	account := &models.Account{}
	var subtype, walletAddress sql.NullString
	var linkItemID sql.NullString
	var isManual, isActive int
	var accType, category string

	err := s.Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&accType,
		&subtype,
		&category,
		&linkItemID,
		&isManual,
		&isActive,
		&account.Currency,
		&walletAddress,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Type = models.AccountType(accType)
	account.Category = models.AssetCategory(category)
	if subtype.Valid {
		account.Subtype = subtype.String
	}
	if linkItemID.Valid {
		account.LinkItemID = &linkItemID.String
	}
	if walletAddress.Valid {
		account.WalletAddress = walletAddress.String
	}
	account.IsManual = isManual == 1
	account.IsActive = isActive == 1

	return account, nil
}

// queryAccounts is a helper to query multiple accounts.
func (r *AccountRepository) queryAccounts(query string, args ...any) ([]*models.Account, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Update updates an existing account.
func (r *AccountRepository) Update(account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	result, err := r.db.Exec(`
		UPDATE accounts
		SET name = ?, subtype = ?, category = ?, is_active = ?, wallet_address = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, account.Name, account.Subtype, string(account.Category),
		boolToInt(account.IsActive), account.WalletAddress, account.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("account not found")
	}
	return nil
}

// Delete removes an account by ID.
func (r *AccountRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("account not found")
	}
	return nil
}

// CountByUserID returns the number of accounts for a user.
func (r *AccountRepository) CountByUserID(userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM accounts WHERE user_id = ?
	`, userID).Scan(&count)
	return count, err
}

// boolToInt converts a boolean to SQLite integer (0 or 1).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
