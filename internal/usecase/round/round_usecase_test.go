package round

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/domain/mocks"
	"github.com/nbagirov/tapreflex/internal/game"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func newTestUseCase(t *testing.T) (*RoundUseCase, *mocks.MockProfileUseCase, *mocks.MockOutboxRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockProfileUC := mocks.NewMockProfileUseCase(ctrl)
	mockOutboxRepo := mocks.NewMockOutboxRepository(ctrl)

	uc := &RoundUseCase{
		rounds:     make(map[string]*game.Round),
		profileUC:  mockProfileUC,
		outboxRepo: mockOutboxRepo,
		logger:     logger.NewLogger("test", "debug"),
		area:       game.PlayArea{Width: 390, Height: 560},
	}
	t.Cleanup(uc.Shutdown)
	return uc, mockProfileUC, mockOutboxRepo
}

// finishRound drives a started round to completion with misses sprinkled in.
func finishRound(t *testing.T, uc *RoundUseCase, userID string, targets, misses int) *domain.RoundSnapshot {
	t.Helper()
	for i := 0; i < misses; i++ {
		_, err := uc.Miss(userID)
		assert.NoError(t, err)
	}
	var snap *domain.RoundSnapshot
	var err error
	for i := 0; i < targets; i++ {
		snap, err = uc.Hit(userID)
		assert.NoError(t, err)
	}
	return snap
}

func TestStartRejectsUnknownDifficulty(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Start("user-1", domain.Difficulty(25))
	var appErr *domain.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, domain.ErrCodeInvalidDifficulty, appErr.Code)
}

func TestStartReturnsRunningSnapshot(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	snap, err := uc.Start("user-1", domain.Targets10)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoundStateRunning, snap.State)
	assert.Equal(t, domain.Targets10, snap.Difficulty)
	assert.Equal(t, 0, snap.Hits)
	assert.Nil(t, snap.Outcome)
}

func TestHitWithoutRoundConflicts(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Hit("user-1")
	var appErr *domain.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, domain.ErrCodeRoundNotRunning, appErr.Code)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestCurrentWithoutRoundIsIdle(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	snap, err := uc.Current("user-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoundStateIdle, snap.State)
}

func TestFinalHitFinishesAndPersists(t *testing.T) {
	uc, mockProfileUC, _ := newTestUseCase(t)

	mockProfileUC.EXPECT().
		RecordRoundResult("user-1", gomock.Any()).
		DoAndReturn(func(userID string, sub domain.RoundSubmission) error {
			assert.Equal(t, domain.Targets10, sub.Level)
			assert.Equal(t, domain.GameTypeTap, sub.GameType)
			assert.Equal(t, 10, sub.Moves)
			assert.GreaterOrEqual(t, sub.Stars, 1)
			return nil
		})

	_, err := uc.Start("user-1", domain.Targets10)
	assert.NoError(t, err)

	snap := finishRound(t, uc, "user-1", 10, 2)

	assert.Equal(t, domain.RoundStateFinished, snap.State)
	assert.Equal(t, 10, snap.Hits)
	assert.Equal(t, 2, snap.Misses)
	assert.NotNil(t, snap.Outcome)
	assert.True(t, snap.Persisted)
	assert.GreaterOrEqual(t, snap.Outcome.Stars, 1)
	assert.LessOrEqual(t, snap.Outcome.Stars, 3)
}

func TestPersistFailureParksSubmission(t *testing.T) {
	uc, mockProfileUC, mockOutboxRepo := newTestUseCase(t)

	storeErr := domain.NewAppError(domain.ErrCodeDatabaseConnection, "store down", 500, nil)
	mockProfileUC.EXPECT().RecordRoundResult("user-1", gomock.Any()).Return(storeErr)
	mockOutboxRepo.EXPECT().Save(gomock.Any()).DoAndReturn(func(event *domain.OutboxEvent) error {
		assert.Equal(t, domain.EventTypeRoundResultRetry, event.Type)
		assert.Equal(t, domain.EventStatusPending, event.Status)
		assert.Equal(t, "user-1", event.Data["user_id"])
		assert.Equal(t, 10, event.Data["level"])
		return nil
	})

	_, err := uc.Start("user-1", domain.Targets10)
	assert.NoError(t, err)

	snap := finishRound(t, uc, "user-1", 10, 0)

	// The outcome is still reported; only persistence is flagged.
	assert.Equal(t, domain.RoundStateFinished, snap.State)
	assert.NotNil(t, snap.Outcome)
	assert.False(t, snap.Persisted)
}

func TestMissingProfileIsNotRetried(t *testing.T) {
	uc, mockProfileUC, _ := newTestUseCase(t)

	notFound := domain.NewAppError(domain.ErrCodeProfileNotFound, "Profile not found", 404, nil)
	mockProfileUC.EXPECT().RecordRoundResult("user-1", gomock.Any()).Return(notFound)
	// No outbox Save expected: replaying cannot repair a missing profile.

	_, err := uc.Start("user-1", domain.Targets10)
	assert.NoError(t, err)

	snap := finishRound(t, uc, "user-1", 10, 0)
	assert.False(t, snap.Persisted)
}

func TestStartReplacesRoundInFlight(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Start("user-1", domain.Targets10)
	assert.NoError(t, err)
	_, err = uc.Hit("user-1")
	assert.NoError(t, err)

	snap, err := uc.Start("user-1", domain.Targets20)
	assert.NoError(t, err)
	assert.Equal(t, domain.Targets20, snap.Difficulty)
	assert.Equal(t, 0, snap.Hits)
}

func TestPostFinishTapsAreIgnored(t *testing.T) {
	uc, mockProfileUC, _ := newTestUseCase(t)

	mockProfileUC.EXPECT().RecordRoundResult("user-1", gomock.Any()).Return(nil)

	_, err := uc.Start("user-1", domain.Targets10)
	assert.NoError(t, err)

	finishRound(t, uc, "user-1", 10, 0)

	// Further taps are no-ops on the finished round: no second persistence.
	snap, err := uc.Hit("user-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoundStateFinished, snap.State)
	assert.Equal(t, 10, snap.Hits)

	snap, err = uc.Miss("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, snap.Misses)
}

func TestRoundsAreIsolatedPerPlayer(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.Start("user-1", domain.Targets10)
	assert.NoError(t, err)
	_, err = uc.Start("user-2", domain.Targets20)
	assert.NoError(t, err)

	_, err = uc.Hit("user-1")
	assert.NoError(t, err)

	snap, err := uc.Current("user-2")
	assert.NoError(t, err)
	assert.Equal(t, 0, snap.Hits)
	assert.Equal(t, domain.Targets20, snap.Difficulty)
}
