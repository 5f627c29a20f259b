package app

import (
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func (a *application) InitRepository(db *gorm.DB) (domain.ProfileRepository, domain.HistoryRepository, domain.OutboxRepository) {
	return repository.NewProfileRepository(db), repository.NewHistoryRepository(db), repository.NewOutboxRepository(db)
}
