package domain

import (
	"time"

	"gorm.io/gorm"
)

// GameTypeTap is the only game type the tap client submits today. The column
// stays free-form so future modes reuse the same history table.
const GameTypeTap = "tap"

// HistoryEntry is one completed round. Rows are append-only: they are never
// updated or deleted after creation.
type HistoryEntry struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id;type:varchar(64)"`
	UserID      string    `json:"userId" gorm:"index;type:varchar(64);not null"`
	Level       int       `json:"level" gorm:"not null"`
	GameType    string    `json:"gameType" gorm:"type:varchar(16);not null"`
	Score       int64     `json:"score" gorm:"not null"`
	Time        float64   `json:"time" gorm:"type:numeric(10,1);not null"`
	Stars       int       `json:"stars" gorm:"not null"`
	Moves       int       `json:"moves" gorm:"not null"`
	CompletedAt time.Time `json:"completedAt" gorm:"index;not null"`
}

// TableName specifies the table name for HistoryEntry
func (h HistoryEntry) TableName() string {
	return "game_history"
}

// HistoryRepository defines the interface for game history persistence
type HistoryRepository interface {
	Create(entry *HistoryEntry) error
	ListByUser(userID string, limit int) ([]*HistoryEntry, error)
	WithTransaction(tx *gorm.DB) HistoryRepository
}
