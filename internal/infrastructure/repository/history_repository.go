package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/nbagirov/tapreflex/internal/domain"

	"gorm.io/gorm"
)

// HistoryRepository implements domain.HistoryRepository
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new game history repository
func NewHistoryRepository(db *gorm.DB) domain.HistoryRepository {
	return &HistoryRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction
func (r *HistoryRepository) WithTransaction(tx *gorm.DB) domain.HistoryRepository {
	return &HistoryRepository{db: tx}
}

// Create appends one history entry. The row is never updated afterwards.
func (r *HistoryRepository) Create(entry *domain.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = time.Now()
	}
	return r.db.Create(entry).Error
}

// ListByUser retrieves a user's most recent rounds
func (r *HistoryRepository) ListByUser(userID string, limit int) ([]*domain.HistoryEntry, error) {
	var entries []*domain.HistoryEntry
	result := r.db.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&entries)
	return entries, result.Error
}
