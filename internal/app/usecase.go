package app

import (
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/game"
	"github.com/nbagirov/tapreflex/internal/infrastructure/auth"
	"github.com/nbagirov/tapreflex/internal/infrastructure/lock"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	authuc "github.com/nbagirov/tapreflex/internal/usecase/auth"
	leaderboarduc "github.com/nbagirov/tapreflex/internal/usecase/leaderboard"
	profileuc "github.com/nbagirov/tapreflex/internal/usecase/profile"
	rounduc "github.com/nbagirov/tapreflex/internal/usecase/round"
	"gorm.io/gorm"
)

func (a *application) InitProfileUseCase(
	pr domain.ProfileRepository,
	hr domain.HistoryRepository,
	db *gorm.DB,
	log *logger.Logger,
	lm *lock.PlayerLockManager,
) domain.ProfileUseCase {
	return profileuc.NewProfileUseCase(pr, hr, db, log, lm)
}

func (a *application) InitLeaderboardUseCase(
	pr domain.ProfileRepository,
	log *logger.Logger,
) domain.LeaderboardUseCase {
	return leaderboarduc.NewLeaderboardUseCase(pr, log)
}

func (a *application) InitRoundUseCase(
	profileUC domain.ProfileUseCase,
	outboxRepo domain.OutboxRepository,
	log *logger.Logger,
) domain.RoundUseCase {
	area := game.PlayArea{
		Width:  a.config.Game.PlayAreaWidth,
		Height: a.config.Game.PlayAreaHeight,
	}
	return rounduc.NewRoundUseCase(profileUC, outboxRepo, log, area)
}

func (a *application) InitAuthUseCase(
	identity domain.IdentityProvider,
	profileUC domain.ProfileUseCase,
	jwt auth.JWTService,
	log *logger.Logger,
) domain.AuthUseCase {
	return authuc.NewAuthUseCase(identity, profileUC, jwt, log)
}
