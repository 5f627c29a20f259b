package profile

import (
	"time"

	"github.com/nbagirov/tapreflex/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecordRoundResult merges one finished round into the player's profile and
// appends the history entry, both inside a single database transaction:
// either the profile update and the history row land together, or neither
// does. Concurrent submissions for the same player in this process are
// serialized by the lock manager; writers in other processes can still clobber
// each other's aggregates (accepted gap, no document version check).
func (uc *ProfileUseCase) RecordRoundResult(userID string, submission domain.RoundSubmission) error {
	if err := validateSubmission(submission); err != nil {
		return err
	}

	if err := uc.lockPlayer(userID); err != nil {
		return domain.NewInternalError("Failed to serialize result submission", err)
	}
	defer uc.lockManager.Unlock(userID)

	tx, txProfileRepo, txHistoryRepo, err := uc.setupTransactionDB()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := uc.mergeAndAppend(txProfileRepo, txHistoryRepo, userID, submission); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit result", 500, err)
	}

	uc.logger.Info("Round result recorded",
		zap.String("userID", userID),
		zap.Int("level", submission.Level.Targets()),
		zap.Int64("score", submission.Score),
		zap.Int("stars", submission.Stars))

	return nil
}

// mergeAndAppend is the transactional body of RecordRoundResult: read the
// profile, fold the submission in, write the profile and the history row
// through the same transaction-bound repositories. Any error leaves the
// transaction for the caller to roll back, so the profile update and the
// history append land together or not at all.
func (uc *ProfileUseCase) mergeAndAppend(profileRepo domain.ProfileRepository, historyRepo domain.HistoryRepository, userID string, submission domain.RoundSubmission) error {
	prof, err := profileRepo.GetByID(userID)
	if err != nil {
		uc.logger.Error("Failed to read profile for result merge", zap.String("userID", userID), zap.Error(err))
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to read profile", 500, err)
	}
	if prof == nil {
		// Profiles are created at signup; hitting this means upstream data is
		// broken, not that the player did anything wrong.
		uc.logger.Warn("Result submitted for missing profile", zap.String("userID", userID))
		return domain.NewAppError(domain.ErrCodeProfileNotFound, "Profile not found", 404, nil)
	}

	entry := applyRoundResult(prof, submission, time.Now())

	if err := profileRepo.Update(prof); err != nil {
		uc.logger.Error("Failed to write merged profile", zap.String("userID", userID), zap.Error(err))
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update profile", 500, err)
	}

	if err := historyRepo.Create(entry); err != nil {
		uc.logger.Error("Failed to append history entry", zap.String("userID", userID), zap.Error(err))
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to append history", 500, err)
	}

	return nil
}

// applyRoundResult folds one submission into the profile in memory and builds
// the matching history entry. Best scores and stars only move up, best times
// adopt-then-min, completed latches true; totals grow by the round's
// contribution.
func applyRoundResult(prof *domain.UserProfile, submission domain.RoundSubmission, now time.Time) *domain.HistoryEntry {
	if prof.LevelProgress == nil {
		prof.LevelProgress = domain.NewLevelProgress()
	}

	stat := prof.LevelProgress[submission.Level]
	if submission.Score > stat.BestScore {
		stat.BestScore = submission.Score
	}
	stat.BestTime = stat.BestTime.Merge(submission.Time)
	if submission.Stars > stat.Stars {
		stat.Stars = submission.Stars
	}
	stat.Completed = true
	prof.LevelProgress[submission.Level] = stat

	prof.TotalScore += submission.Score
	prof.GamesPlayed++
	if submission.Score > prof.BestScore {
		prof.BestScore = submission.Score
	}
	prof.BestTimeOverall = prof.BestTimeOverall.Merge(submission.Time)
	if submission.GameType == domain.GameTypeTap {
		prof.BestTapTime = prof.BestTapTime.Merge(submission.Time)
	}
	prof.TotalStars += submission.Stars

	return &domain.HistoryEntry{
		UserID:      prof.UserID,
		Level:       submission.Level.Targets(),
		GameType:    submission.GameType,
		Score:       submission.Score,
		Time:        submission.Time,
		Stars:       submission.Stars,
		Moves:       submission.Moves,
		CompletedAt: now,
	}
}

func validateSubmission(submission domain.RoundSubmission) error {
	if _, err := domain.ParseDifficulty(submission.Level.Targets()); err != nil {
		return err
	}
	if submission.Score < 0 {
		return domain.NewAppError(domain.ErrCodeInvalidRange, "Score cannot be negative", 400, nil)
	}
	if submission.Time <= 0 {
		return domain.NewAppError(domain.ErrCodeInvalidRange, "Time must be positive", 400, nil)
	}
	if submission.Stars < 1 || submission.Stars > 3 {
		return domain.NewAppError(domain.ErrCodeInvalidRange, "Stars must be between 1 and 3", 400, nil)
	}
	if submission.GameType == "" {
		return domain.NewAppError(domain.ErrCodeRequiredField, "Game type is required", 400, nil)
	}
	return nil
}

// setupTransactionDB sets up a database transaction with repositories
func (uc *ProfileUseCase) setupTransactionDB() (*gorm.DB, domain.ProfileRepository, domain.HistoryRepository, error) {
	tx := uc.db.Begin()
	if tx.Error != nil {
		uc.logger.Error("Failed to start database transaction", zap.Error(tx.Error))
		return nil, nil, nil, domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", 500, tx.Error)
	}

	return tx, uc.profileRepo.WithTransaction(tx), uc.historyRepo.WithTransaction(tx), nil
}
