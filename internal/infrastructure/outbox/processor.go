package outbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Processor implements domain.OutboxProcessor. It drains pending round-result
// submissions whose first persistence attempt failed, so a transient store
// outage never loses a finished round.
type Processor struct {
	outboxRepo domain.OutboxRepository
	profileUC  domain.ProfileUseCase
	logger     *logger.Logger
	maxRetries int

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
	isRunning bool
}

// NewProcessor creates a new outbox processor
func NewProcessor(
	outboxRepo domain.OutboxRepository,
	profileUC domain.ProfileUseCase,
	logger *logger.Logger,
) *Processor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Processor{
		outboxRepo: outboxRepo,
		profileUC:  profileUC,
		logger:     logger,
		maxRetries: 5,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// ProcessEvents processes all pending events
func (p *Processor) ProcessEvents() error {
	if err := p.checkCancellation(); err != nil {
		return err
	}

	events, err := p.outboxRepo.GetPendingEvents(100)
	if err != nil {
		p.logger.Error("Failed to get pending events", zap.Error(err))
		return err
	}

	for _, event := range events {
		select {
		case <-p.ctx.Done():
			return fmt.Errorf("processor cancelled")
		default:
		}

		if err := p.ProcessEvent(event); err != nil {
			p.logger.Error("Failed to process event",
				zap.String("eventID", event.ID),
				zap.String("eventType", event.Type),
				zap.Error(err))

			if event.RetryCount < p.maxRetries {
				if retryErr := p.outboxRepo.IncrementRetryCount(event.ID); retryErr != nil {
					p.logger.Error("Failed to increment retry count", zap.Error(retryErr))
				}
			} else {
				if failErr := p.outboxRepo.MarkAsFailed(event.ID, err.Error()); failErr != nil {
					p.logger.Error("Failed to mark event as failed", zap.Error(failErr))
				}
			}
		}
	}

	return nil
}

// ProcessEvent processes a single outbox event
func (p *Processor) ProcessEvent(event *domain.OutboxEvent) error {
	p.logger.Info("Processing outbox event",
		zap.String("eventID", event.ID),
		zap.String("eventType", event.Type))

	if event.Type == domain.EventTypeRoundResultRetry {
		return p.handleRoundResultRetry(event)
	}

	p.logger.Warn("Unknown event type",
		zap.String("eventID", event.ID),
		zap.String("eventType", event.Type))
	return fmt.Errorf("unknown event type: %s", event.Type)
}

// handleRoundResultRetry replays a parked round-result submission through the
// profile aggregator. A missing profile is terminal: replaying cannot repair
// broken signup data, so the event is marked failed instead of retried.
func (p *Processor) handleRoundResultRetry(event *domain.OutboxEvent) error {
	if err := p.checkCancellation(); err != nil {
		return err
	}

	userID, submission, err := extractSubmission(event)
	if err != nil {
		return err
	}

	if err := p.profileUC.RecordRoundResult(userID, submission); err != nil {
		if domain.IsProfileNotFound(err) {
			p.logger.Warn("Parked result references missing profile, abandoning",
				zap.String("eventID", event.ID),
				zap.String("userID", userID))
			if failErr := p.outboxRepo.MarkAsFailed(event.ID, err.Error()); failErr != nil {
				return failErr
			}
			return nil
		}
		return fmt.Errorf("failed to replay round result: %w", err)
	}

	p.logger.Info("Parked round result persisted",
		zap.String("eventID", event.ID),
		zap.String("userID", userID))

	return p.outboxRepo.MarkAsProcessed(event.ID)
}

// extractSubmission rebuilds the round submission from event data. JSONB
// round-trips numbers as float64.
func extractSubmission(event *domain.OutboxEvent) (string, domain.RoundSubmission, error) {
	var sub domain.RoundSubmission

	userID, ok := event.Data["user_id"].(string)
	if !ok || userID == "" {
		return "", sub, fmt.Errorf("invalid user_id in event data")
	}

	level, ok := event.Data["level"].(float64)
	if !ok {
		return "", sub, fmt.Errorf("invalid level in event data")
	}
	difficulty, err := domain.ParseDifficulty(int(level))
	if err != nil {
		return "", sub, fmt.Errorf("invalid level in event data: %w", err)
	}

	gameType, ok := event.Data["game_type"].(string)
	if !ok {
		return "", sub, fmt.Errorf("invalid game_type in event data")
	}

	score, ok := event.Data["score"].(float64)
	if !ok {
		return "", sub, fmt.Errorf("invalid score in event data")
	}

	timeSec, ok := event.Data["time"].(float64)
	if !ok {
		return "", sub, fmt.Errorf("invalid time in event data")
	}

	stars, ok := event.Data["stars"].(float64)
	if !ok {
		return "", sub, fmt.Errorf("invalid stars in event data")
	}

	moves, ok := event.Data["moves"].(float64)
	if !ok {
		return "", sub, fmt.Errorf("invalid moves in event data")
	}

	sub = domain.RoundSubmission{
		Level:    difficulty,
		GameType: gameType,
		Score:    int64(score),
		Time:     timeSec,
		Stars:    int(stars),
		Moves:    int(moves),
	}
	return userID, sub, nil
}

// checkCancellation checks if the processor has been cancelled
func (p *Processor) checkCancellation() error {
	select {
	case <-p.ctx.Done():
		return fmt.Errorf("processor cancelled")
	default:
		return nil
	}
}

// StartBackgroundProcessing starts the background processing loop
func (p *Processor) StartBackgroundProcessing() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		p.logger.Warn("Outbox processor is already running")
		return
	}

	p.isRunning = true
	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		p.logger.Info("Outbox background processing started")

		for {
			select {
			case <-p.ctx.Done():
				p.logger.Info("Outbox background processing stopped")
				return
			case <-ticker.C:
				if err := p.ProcessEvents(); err != nil {
					p.logger.Error("Background processing failed", zap.Error(err))
				}
			}
		}
	}()
}

// StopBackgroundProcessing stops the background processing loop
func (p *Processor) StopBackgroundProcessing() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isRunning {
		p.logger.Warn("Outbox processor is not running")
		return
	}

	p.logger.Info("Stopping outbox background processing...")
	p.cancel()
	p.wg.Wait()
	p.isRunning = false
	p.logger.Info("Outbox background processing stopped")
}
