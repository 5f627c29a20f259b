package app

import (
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"github.com/nbagirov/tapreflex/internal/infrastructure/outbox"
)

func (a *application) InitOutboxProcessor(
	outboxRepo domain.OutboxRepository,
	profileUC domain.ProfileUseCase,
	logger *logger.Logger,
) domain.OutboxProcessor {
	return outbox.NewProcessor(outboxRepo, profileUC, logger)
}
