package leaderboard

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/domain/mocks"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func newTestUseCase(t *testing.T) (*LeaderboardUseCase, *mocks.MockProfileRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockProfileRepo := mocks.NewMockProfileRepository(ctrl)
	uc := &LeaderboardUseCase{
		profileRepo: mockProfileRepo,
		logger:      logger.NewLogger("test", "debug"),
	}
	return uc, mockProfileRepo
}

func profileWithTimes(userID string, times map[domain.Difficulty]float64) *domain.UserProfile {
	lp := domain.NewLevelProgress()
	for d, secs := range times {
		stat := lp[d]
		stat.BestTime = domain.BestTime(secs)
		stat.Completed = true
		lp[d] = stat
	}
	return &domain.UserProfile{
		UserID:        userID,
		Nickname:      userID,
		PublicID:      userID + "-pub",
		LevelProgress: lp,
	}
}

func TestRankGlobalOrdersByAvgTapTime(t *testing.T) {
	profiles := []*domain.UserProfile{
		profileWithTimes("slow", map[domain.Difficulty]float64{domain.Targets10: 20.0}),
		profileWithTimes("fast", map[domain.Difficulty]float64{domain.Targets10: 5.0}),
		profileWithTimes("mixed", map[domain.Difficulty]float64{domain.Targets10: 8.0, domain.Targets20: 12.0}),
	}

	entries := RankGlobal(profiles)

	assert.Len(t, entries, 3)
	assert.Equal(t, "fast", entries[0].Player.UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "mixed", entries[1].Player.UserID)
	assert.Equal(t, 10.0, entries[1].AvgTapTime)
	assert.Equal(t, "slow", entries[2].Player.UserID)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRankGlobalPlacesNoDataLast(t *testing.T) {
	profiles := []*domain.UserProfile{
		profileWithTimes("empty-a", nil),
		profileWithTimes("fast", map[domain.Difficulty]float64{domain.Targets10: 5.0}),
		profileWithTimes("empty-b", nil),
	}

	entries := RankGlobal(profiles)

	assert.Equal(t, "fast", entries[0].Player.UserID)
	// Players without data keep their snapshot order behind everyone with data.
	assert.Equal(t, "empty-a", entries[1].Player.UserID)
	assert.Equal(t, "empty-b", entries[2].Player.UserID)
	assert.Equal(t, 0.0, entries[1].AvgTapTime)
}

func TestRankByDifficultyOmitsMissingTimes(t *testing.T) {
	profiles := []*domain.UserProfile{
		profileWithTimes("has-20", map[domain.Difficulty]float64{domain.Targets20: 11.5}),
		profileWithTimes("only-10", map[domain.Difficulty]float64{domain.Targets10: 4.0}),
		profileWithTimes("faster-20", map[domain.Difficulty]float64{domain.Targets20: 9.9}),
	}

	entries := RankByDifficulty(profiles, domain.Targets20)

	assert.Len(t, entries, 2)
	assert.Equal(t, "faster-20", entries[0].Player.UserID)
	assert.Equal(t, 9.9, entries[0].LevelBestTime)
	assert.Equal(t, "has-20", entries[1].Player.UserID)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestMergeSearchResultsDedupsAndCaps(t *testing.T) {
	alice := profileWithTimes("alice", nil)
	bob := profileWithTimes("bob", nil)
	carol := profileWithTimes("carol", nil)

	merged := MergeSearchResults(
		[]*domain.UserProfile{alice, bob},
		[]*domain.UserProfile{alice, carol},
		10,
	)

	assert.Len(t, merged, 3)
	assert.Equal(t, "alice", merged[0].UserID)
	assert.Equal(t, "bob", merged[1].UserID)
	assert.Equal(t, "carol", merged[2].UserID)

	capped := MergeSearchResults(
		[]*domain.UserProfile{alice, bob},
		[]*domain.UserProfile{carol},
		2,
	)
	assert.Len(t, capped, 2)
}

func TestSearchPlayersStripsHashForPublicIDOnly(t *testing.T) {
	uc, mockProfileRepo := newTestUseCase(t)

	// The nickname channel sees the term as typed; only the public-id channel
	// drops the rendered '#' prefix.
	mockProfileRepo.EXPECT().SearchByNickname("#k3f9", DefaultSearchLimit).Return(nil, nil)
	mockProfileRepo.EXPECT().SearchByPublicID("k3f9", DefaultSearchLimit).Return([]*domain.UserProfile{
		profileWithTimes("match", nil),
	}, nil)

	results, err := uc.SearchPlayers("#k3f9", 0)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "match", results[0].UserID)
}

func TestSearchPlayersPlainTermHitsBothChannels(t *testing.T) {
	uc, mockProfileRepo := newTestUseCase(t)

	mockProfileRepo.EXPECT().SearchByNickname("alice", DefaultSearchLimit).Return([]*domain.UserProfile{
		profileWithTimes("by-nick", nil),
	}, nil)
	mockProfileRepo.EXPECT().SearchByPublicID("alice", DefaultSearchLimit).Return(nil, nil)

	results, err := uc.SearchPlayers("alice", 0)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "by-nick", results[0].UserID)
}

func TestSearchPlayersRejectsEmptyTerm(t *testing.T) {
	uc, _ := newTestUseCase(t)

	for _, term := range []string{"", "   ", "#", " # "} {
		_, err := uc.SearchPlayers(term, 10)
		var appErr *domain.AppError
		assert.True(t, errors.As(err, &appErr), "term %q", term)
		assert.Equal(t, domain.ErrCodeInvalidSearchTerm, appErr.Code)
	}
}

func TestGlobalRankingUsesDefaultLimit(t *testing.T) {
	uc, mockProfileRepo := newTestUseCase(t)

	mockProfileRepo.EXPECT().TopByTotalScore(DefaultLeaderboardLimit).Return(nil, nil)

	entries, err := uc.GlobalRanking(0)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDifficultyRankingRejectsUnknownLevel(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.DifficultyRanking(domain.Difficulty(15), 10)
	assert.Error(t, err)
}

func TestTopByTotalScorePreservesOrder(t *testing.T) {
	uc, mockProfileRepo := newTestUseCase(t)

	first := profileWithTimes("first", nil)
	first.TotalScore = 90000
	second := profileWithTimes("second", nil)
	second.TotalScore = 50000

	mockProfileRepo.EXPECT().TopByTotalScore(2).Return([]*domain.UserProfile{first, second}, nil)

	summaries, err := uc.TopByTotalScore(2)
	assert.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, "first", summaries[0].UserID)
	assert.Equal(t, int64(90000), summaries[0].TotalScore)
}
