package round

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/game"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// RoundUseCase implements domain.RoundUseCase. It holds the single live round
// per player session and bridges the engine to the profile aggregator when a
// round finishes.
type RoundUseCase struct {
	mu     sync.Mutex
	rounds map[string]*game.Round

	profileUC  domain.ProfileUseCase
	outboxRepo domain.OutboxRepository
	logger     *logger.Logger
	area       game.PlayArea
}

// NewRoundUseCase creates a new round use case
func NewRoundUseCase(
	profileUC domain.ProfileUseCase,
	outboxRepo domain.OutboxRepository,
	logger *logger.Logger,
	area game.PlayArea,
) domain.RoundUseCase {
	return &RoundUseCase{
		rounds:     make(map[string]*game.Round),
		profileUC:  profileUC,
		outboxRepo: outboxRepo,
		logger:     logger,
		area:       area,
	}
}

// Start begins a round for the player, replacing any round already in flight.
// The replaced round's display ticker is stopped before it is dropped.
func (uc *RoundUseCase) Start(userID string, difficulty domain.Difficulty) (*domain.RoundSnapshot, error) {
	if _, err := domain.ParseDifficulty(difficulty.Targets()); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	if prev, ok := uc.rounds[userID]; ok {
		prev.Reset()
	}
	r := game.NewRound(difficulty, uc.area)
	uc.rounds[userID] = r
	uc.mu.Unlock()

	r.Start()
	snap := r.Snapshot()

	uc.logger.Info("Round started",
		zap.String("userID", userID),
		zap.Int("targets", difficulty.Targets()))

	return &snap, nil
}

// Hit registers a tap on the target. The hit that clears the final target
// finishes the round: the outcome is computed and merged into the player's
// profile. Persistence failure is non-blocking: the outcome is still returned
// and the submission is parked in the outbox for retry.
func (uc *RoundUseCase) Hit(userID string) (*domain.RoundSnapshot, error) {
	r, err := uc.activeRound(userID)
	if err != nil {
		return nil, err
	}

	result, finished := r.Hit()
	snap := r.Snapshot()

	if !finished {
		return &snap, nil
	}

	outcome := game.Score(*result, snap.Difficulty)
	snap.Outcome = &outcome

	submission := domain.RoundSubmission{
		Level:    snap.Difficulty,
		GameType: domain.GameTypeTap,
		Score:    outcome.Score,
		Time:     outcome.TimeSeconds,
		Stars:    outcome.Stars,
		Moves:    result.Hits,
	}

	snap.Persisted = uc.persist(userID, submission)
	return &snap, nil
}

// Miss registers a tap outside the target; ignored once the round finished.
func (uc *RoundUseCase) Miss(userID string) (*domain.RoundSnapshot, error) {
	r, err := uc.activeRound(userID)
	if err != nil {
		return nil, err
	}
	r.Miss()
	snap := r.Snapshot()
	return &snap, nil
}

// Current reports the player's round as-is; players with no round get an idle
// snapshot.
func (uc *RoundUseCase) Current(userID string) (*domain.RoundSnapshot, error) {
	uc.mu.Lock()
	r, ok := uc.rounds[userID]
	uc.mu.Unlock()

	if !ok {
		return &domain.RoundSnapshot{State: domain.RoundStateIdle}, nil
	}
	snap := r.Snapshot()
	return &snap, nil
}

// Shutdown stops every live round's display ticker.
func (uc *RoundUseCase) Shutdown() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, r := range uc.rounds {
		r.Reset()
	}
	uc.rounds = make(map[string]*game.Round)
}

func (uc *RoundUseCase) activeRound(userID string) (*game.Round, error) {
	uc.mu.Lock()
	r, ok := uc.rounds[userID]
	uc.mu.Unlock()

	if !ok {
		return nil, domain.NewAppError(domain.ErrCodeRoundNotRunning, "No round in progress", 409, nil)
	}
	return r, nil
}

// persist merges the result into the profile; on transient failure the
// submission is saved as a pending outbox event so the background processor
// can catch the profile up. A missing profile is not retried: replays cannot
// fix broken signup data.
func (uc *RoundUseCase) persist(userID string, submission domain.RoundSubmission) bool {
	err := uc.profileUC.RecordRoundResult(userID, submission)
	if err == nil {
		return true
	}

	uc.logger.Error("Failed to persist round result",
		zap.String("userID", userID),
		zap.Int64("score", submission.Score),
		zap.Error(err))

	if domain.IsProfileNotFound(err) {
		return false
	}

	event := &domain.OutboxEvent{
		ID:   uuid.NewString(),
		Type: domain.EventTypeRoundResultRetry,
		Data: domain.JSONB{
			"user_id":   userID,
			"level":     submission.Level.Targets(),
			"game_type": submission.GameType,
			"score":     submission.Score,
			"time":      submission.Time,
			"stars":     submission.Stars,
			"moves":     submission.Moves,
		},
		Status:    domain.EventStatusPending,
		CreatedAt: time.Now(),
	}
	if saveErr := uc.outboxRepo.Save(event); saveErr != nil {
		uc.logger.Error("Failed to park round result in outbox",
			zap.String("userID", userID),
			zap.Error(saveErr))
	}
	return false
}
