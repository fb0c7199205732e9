package repository

import (
	"database/sql"
	"fmt"

	"networth_tracker/internal/database"
	"networth_tracker/internal/models"
)

// BalanceRepository handles balance snapshot database operations.
type BalanceRepository struct {
	db *database.DB
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(db *database.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

const balanceColumns = `id, account_id, balance, available, credit_limit,
	balance_date, is_current, source, created_at`

// SetCurrent records a new current balance for an account, atomically
// unsetting the prior current snapshot in the same transaction. At most one
// balance per account is current at any moment (also enforced by a partial
// unique index).
func (r *BalanceRepository) SetCurrent(balance *models.Balance) (int64, error) {
	if _, err := models.ParseBalanceSource(string(balance.Source)); err != nil {
		return 0, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE balances SET is_current = 0 WHERE account_id = ? AND is_current = 1
	`, balance.AccountID); err != nil {
		return 0, fmt.Errorf("superseding current balance: %w", err)
	}

	result, err := tx.Exec(`
		INSERT INTO balances (account_id, balance, available, credit_limit, balance_date, is_current, source)
		VALUES (?, ?, ?, ?, ?, 1, ?)
	`, balance.AccountID, balance.Balance, balance.Available, balance.CreditLimit,
		balance.BalanceDate, string(balance.Source))
	if err != nil {
		return 0, fmt.Errorf("inserting balance: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing balance: %w", err)
	}
	return id, nil
}

// GetCurrentByAccountID returns the current balance for an account, or nil
// if none is recorded.
func (r *BalanceRepository) GetCurrentByAccountID(accountID int64) (*models.Balance, error) {
	row := r.db.QueryRow(`
		SELECT `+balanceColumns+`
		FROM balances
		WHERE account_id = ? AND is_current = 1
	`, accountID)

	balance, err := scanBalance(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// GetCurrentByUserID returns all current balances for a user's accounts.
func (r *BalanceRepository) GetCurrentByUserID(userID int64) ([]*models.Balance, error) {
	return r.queryBalances(`
		SELECT b.id, b.account_id, b.balance, b.available, b.credit_limit,
			b.balance_date, b.is_current, b.source, b.created_at
		FROM balances b
		JOIN accounts a ON a.id = b.account_id
		WHERE a.user_id = ? AND b.is_current = 1
		ORDER BY b.account_id ASC
	`, userID)
}

// GetByAccountID returns all balance snapshots for an account, newest first.
func (r *BalanceRepository) GetByAccountID(accountID int64) ([]*models.Balance, error) {
	return r.queryBalances(`
		SELECT `+balanceColumns+`
		FROM balances
		WHERE account_id = ?
		ORDER BY balance_date DESC, id DESC
	`, accountID)
}

// CountByAccountID returns the number of snapshots for an account.
func (r *BalanceRepository) CountByAccountID(accountID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM balances WHERE account_id = ?
	`, accountID).Scan(&count)
	return count, err
}

func scanBalance(s scanner) (*models.Balance, error) {
	balance := &models.Balance{}
	var available, creditLimit sql.NullFloat64
	var isCurrent int
	var source string

	err := s.Scan(
		&balance.ID,
		&balance.AccountID,
		&balance.Balance,
		&available,
		&creditLimit,
		&balance.BalanceDate,
		&isCurrent,
		&source,
		&balance.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if available.Valid {
		balance.Available = &available.Float64
	}
	if creditLimit.Valid {
		balance.CreditLimit = &creditLimit.Float64
	}
	balance.IsCurrent = isCurrent == 1
	balance.Source = models.BalanceSource(source)

	return balance, nil
}

func (r *BalanceRepository) queryBalances(query string, args ...any) ([]*models.Balance, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]*models.Balance, 0)
	for rows.Next() {
		balance, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, rows.Err()
}
