package outbox

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/domain/mocks"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func newTestProcessor(t *testing.T) (*Processor, *mocks.MockOutboxRepository, *mocks.MockProfileUseCase) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockOutboxRepo := mocks.NewMockOutboxRepository(ctrl)
	mockProfileUC := mocks.NewMockProfileUseCase(ctrl)
	p := NewProcessor(mockOutboxRepo, mockProfileUC, logger.NewLogger("test", "debug"))
	return p, mockOutboxRepo, mockProfileUC
}

// retryEvent mimics an event read back from the store: JSONB numbers come
// back as float64.
func retryEvent() *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:   "event-1",
		Type: domain.EventTypeRoundResultRetry,
		Data: domain.JSONB{
			"user_id":   "user-1",
			"level":     float64(20),
			"game_type": "tap",
			"score":     float64(18400),
			"time":      float64(12.4),
			"stars":     float64(3),
			"moves":     float64(21),
		},
		Status:    domain.EventStatusPending,
		CreatedAt: time.Now(),
	}
}

func TestProcessEventReplaysSubmission(t *testing.T) {
	p, mockOutboxRepo, mockProfileUC := newTestProcessor(t)

	mockProfileUC.EXPECT().
		RecordRoundResult("user-1", gomock.Any()).
		DoAndReturn(func(userID string, sub domain.RoundSubmission) error {
			assert.Equal(t, domain.Targets20, sub.Level)
			assert.Equal(t, "tap", sub.GameType)
			assert.Equal(t, int64(18400), sub.Score)
			assert.Equal(t, 12.4, sub.Time)
			assert.Equal(t, 3, sub.Stars)
			assert.Equal(t, 21, sub.Moves)
			return nil
		})
	mockOutboxRepo.EXPECT().MarkAsProcessed("event-1").Return(nil)

	err := p.ProcessEvent(retryEvent())
	assert.NoError(t, err)
}

func TestProcessEventMissingProfileMarksFailed(t *testing.T) {
	p, mockOutboxRepo, mockProfileUC := newTestProcessor(t)

	notFound := domain.NewAppError(domain.ErrCodeProfileNotFound, "Profile not found", 404, nil)
	mockProfileUC.EXPECT().RecordRoundResult("user-1", gomock.Any()).Return(notFound)
	mockOutboxRepo.EXPECT().MarkAsFailed("event-1", gomock.Any()).Return(nil)

	err := p.ProcessEvent(retryEvent())
	assert.NoError(t, err)
}

func TestProcessEventTransientFailurePropagates(t *testing.T) {
	p, _, mockProfileUC := newTestProcessor(t)

	mockProfileUC.EXPECT().RecordRoundResult("user-1", gomock.Any()).Return(errors.New("store down"))

	err := p.ProcessEvent(retryEvent())
	assert.Error(t, err)
}

func TestProcessEventUnknownType(t *testing.T) {
	p, _, _ := newTestProcessor(t)

	event := retryEvent()
	event.Type = "SOMETHING_ELSE"

	err := p.ProcessEvent(event)
	assert.Error(t, err)
}

func TestExtractSubmissionRejectsMalformedData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(domain.JSONB)
	}{
		{"Missing_User", func(d domain.JSONB) { delete(d, "user_id") }},
		{"Empty_User", func(d domain.JSONB) { d["user_id"] = "" }},
		{"Level_Wrong_Type", func(d domain.JSONB) { d["level"] = "20" }},
		{"Unknown_Level", func(d domain.JSONB) { d["level"] = float64(25) }},
		{"Missing_Game_Type", func(d domain.JSONB) { delete(d, "game_type") }},
		{"Missing_Score", func(d domain.JSONB) { delete(d, "score") }},
		{"Missing_Time", func(d domain.JSONB) { delete(d, "time") }},
		{"Missing_Stars", func(d domain.JSONB) { delete(d, "stars") }},
		{"Missing_Moves", func(d domain.JSONB) { delete(d, "moves") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := retryEvent()
			tt.mutate(event.Data)
			_, _, err := extractSubmission(event)
			assert.Error(t, err)
		})
	}
}

func TestProcessEventsRetriesThenFails(t *testing.T) {
	p, mockOutboxRepo, mockProfileUC := newTestProcessor(t)

	fresh := retryEvent()
	exhausted := retryEvent()
	exhausted.ID = "event-2"
	exhausted.RetryCount = 5

	mockOutboxRepo.EXPECT().GetPendingEvents(100).Return([]*domain.OutboxEvent{fresh, exhausted}, nil)
	mockProfileUC.EXPECT().RecordRoundResult("user-1", gomock.Any()).Return(errors.New("store down")).Times(2)
	mockOutboxRepo.EXPECT().IncrementRetryCount("event-1").Return(nil)
	mockOutboxRepo.EXPECT().MarkAsFailed("event-2", gomock.Any()).Return(nil)

	err := p.ProcessEvents()
	assert.NoError(t, err)
}
