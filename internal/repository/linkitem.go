package repository

import (
	"database/sql"

	"networth_tracker/internal/database"
	"networth_tracker/internal/models"
)

// LinkItemRepository handles link item database operations.
type LinkItemRepository struct {
	db *database.DB
}

// NewLinkItemRepository creates a new LinkItemRepository.
func NewLinkItemRepository(db *database.DB) *LinkItemRepository {
	return &LinkItemRepository{db: db}
}

// Create inserts a new link item.
func (r *LinkItemRepository) Create(item *models.LinkItem) error {
	_, err := r.db.Exec(`
		INSERT INTO link_items (id, user_id, institution)
		VALUES (?, ?, ?)
	`, item.ID, item.UserID, item.Institution)
	return err
}

// GetByID retrieves a link item by ID. Returns nil if not found.
func (r *LinkItemRepository) GetByID(id string) (*models.LinkItem, error) {
	item := &models.LinkItem{}
	err := r.db.QueryRow(`
		SELECT id, user_id, institution, created_at
		FROM link_items
		WHERE id = ?
	`, id).Scan(&item.ID, &item.UserID, &item.Institution, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetByUserID retrieves all link items for a user.
func (r *LinkItemRepository) GetByUserID(userID int64) ([]*models.LinkItem, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, institution, created_at
		FROM link_items
		WHERE user_id = ?
		ORDER BY institution ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.LinkItem, 0)
	for rows.Next() {
		item := &models.LinkItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Institution, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
