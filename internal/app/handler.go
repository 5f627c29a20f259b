package app

import (
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/http/handlers"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
)

func (a *application) InitAuthHandler(uc domain.AuthUseCase, log *logger.Logger) *handlers.AuthHandler {
	return handlers.NewAuthHandler(uc, log)
}

func (a *application) InitProfileHandler(uc domain.ProfileUseCase, log *logger.Logger) *handlers.ProfileHandler {
	return handlers.NewProfileHandler(uc, log)
}

func (a *application) InitRoundHandler(uc domain.RoundUseCase, log *logger.Logger) *handlers.RoundHandler {
	return handlers.NewRoundHandler(uc, log)
}

func (a *application) InitLeaderboardHandler(uc domain.LeaderboardUseCase, log *logger.Logger) *handlers.LeaderboardHandler {
	return handlers.NewLeaderboardHandler(uc, log)
}
