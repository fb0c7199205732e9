package repository

import (
	"database/sql"

	"networth_tracker/internal/database"
	"networth_tracker/internal/models"
)

// UserRepository handles user database operations.
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(user *models.User) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO users (email, password_hash, name)
		VALUES (?, ?, ?)
	`, user.Email, user.PasswordHash, user.Name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetByID retrieves a user by ID. Returns nil if not found.
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	return r.getUser(`
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM users
		WHERE id = ?
	`, id)
}

// GetByEmail retrieves a user by email. Returns nil if not found.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getUser(`
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM users
		WHERE email = ?
	`, email)
}

func (r *UserRepository) getUser(query string, args ...any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CountAll returns the total number of users.
func (r *UserRepository) CountAll() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
