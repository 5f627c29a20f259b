package leaderboard

import (
	"sort"
	"strings"

	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Result caps. Leaderboards default to the top 50 by total score, search to 20
// matches, matching the mobile client's requests.
const (
	DefaultLeaderboardLimit = 50
	DefaultSearchLimit      = 20
	MaxLimit                = 100
)

// LeaderboardUseCase implements domain.LeaderboardUseCase
type LeaderboardUseCase struct {
	profileRepo domain.ProfileRepository
	logger      *logger.Logger
}

// NewLeaderboardUseCase creates a new leaderboard use case
func NewLeaderboardUseCase(profileRepo domain.ProfileRepository, logger *logger.Logger) domain.LeaderboardUseCase {
	return &LeaderboardUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// GlobalRanking ranks the leaderboard population by average tap time,
// ascending. Players with no recorded times carry the zero sentinel and always
// rank after anyone with data; among themselves they keep the snapshot order.
func (uc *LeaderboardUseCase) GlobalRanking(limit int) ([]*domain.LeaderboardEntry, error) {
	profiles, err := uc.fetch(limit)
	if err != nil {
		return nil, err
	}
	return RankGlobal(profiles), nil
}

// DifficultyRanking ranks by best time at one difficulty, fastest first.
// Players without a set time at that exact difficulty are omitted entirely,
// not ranked last.
func (uc *LeaderboardUseCase) DifficultyRanking(difficulty domain.Difficulty, limit int) ([]*domain.LeaderboardEntry, error) {
	if _, err := domain.ParseDifficulty(difficulty.Targets()); err != nil {
		return nil, err
	}
	profiles, err := uc.fetch(limit)
	if err != nil {
		return nil, err
	}
	return RankByDifficulty(profiles, difficulty), nil
}

// TopByTotalScore is the raw export: profiles ordered by total score
// descending, no derived ranking applied.
func (uc *LeaderboardUseCase) TopByTotalScore(limit int) ([]*domain.PlayerSummary, error) {
	profiles, err := uc.fetch(limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]*domain.PlayerSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, summarize(p))
	}
	return summaries, nil
}

// SearchPlayers returns profiles whose nickname or public id starts with the
// term, merged and deduplicated by user id. The nickname channel matches the
// term as typed; only the public-id channel strips a leading '#', since
// stored public ids never include it, the client only renders it.
func (uc *LeaderboardUseCase) SearchPlayers(term string, limit int) ([]*domain.PlayerSummary, error) {
	trimmed := strings.TrimSpace(term)
	publicIDTerm := strings.TrimPrefix(trimmed, "#")
	if publicIDTerm == "" {
		return nil, domain.NewAppError(domain.ErrCodeInvalidSearchTerm, "Search term is required", 400, nil)
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultSearchLimit
	}

	byNickname, err := uc.profileRepo.SearchByNickname(trimmed, limit)
	if err != nil {
		uc.logger.Error("Nickname search failed", zap.String("term", trimmed), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to search players", 500, err)
	}
	byPublicID, err := uc.profileRepo.SearchByPublicID(publicIDTerm, limit)
	if err != nil {
		uc.logger.Error("Public id search failed", zap.String("term", publicIDTerm), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to search players", 500, err)
	}

	return MergeSearchResults(byNickname, byPublicID, limit), nil
}

func (uc *LeaderboardUseCase) fetch(limit int) ([]*domain.UserProfile, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLeaderboardLimit
	}
	profiles, err := uc.profileRepo.TopByTotalScore(limit)
	if err != nil {
		uc.logger.Error("Failed to load leaderboard profiles", zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to load leaderboard", 500, err)
	}
	return profiles, nil
}

// RankGlobal is the pure "all" view over a profile snapshot.
func RankGlobal(profiles []*domain.UserProfile) []*domain.LeaderboardEntry {
	entries := make([]*domain.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, &domain.LeaderboardEntry{
			Player:     *summarize(p),
			AvgTapTime: p.AvgTapTime(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].AvgTapTime, entries[j].AvgTapTime
		if a == 0 && b == 0 {
			return false
		}
		if a == 0 {
			return false
		}
		if b == 0 {
			return true
		}
		return a < b
	})

	assignRanks(entries)
	return entries
}

// RankByDifficulty is the pure per-difficulty view over a profile snapshot.
func RankByDifficulty(profiles []*domain.UserProfile, difficulty domain.Difficulty) []*domain.LeaderboardEntry {
	entries := make([]*domain.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		stat, ok := p.LevelProgress[difficulty]
		if !ok || !stat.BestTime.IsSet() {
			continue
		}
		entries = append(entries, &domain.LeaderboardEntry{
			Player:        *summarize(p),
			AvgTapTime:    p.AvgTapTime(),
			LevelBestTime: stat.BestTime.Seconds(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LevelBestTime < entries[j].LevelBestTime
	})

	assignRanks(entries)
	return entries
}

// MergeSearchResults joins the nickname and public-id match channels,
// deduplicated by user id, capped at limit.
func MergeSearchResults(byNickname, byPublicID []*domain.UserProfile, limit int) []*domain.PlayerSummary {
	seen := make(map[string]struct{})
	merged := make([]*domain.PlayerSummary, 0, len(byNickname)+len(byPublicID))
	for _, p := range append(append([]*domain.UserProfile{}, byNickname...), byPublicID...) {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		merged = append(merged, summarize(p))
		if len(merged) >= limit {
			break
		}
	}
	return merged
}

// assignRanks numbers entries from 1 in view order; ties keep the input's
// stable order, no secondary key.
func assignRanks(entries []*domain.LeaderboardEntry) {
	for i, e := range entries {
		e.Rank = i + 1
	}
}

func summarize(p *domain.UserProfile) *domain.PlayerSummary {
	return &domain.PlayerSummary{
		UserID:          p.UserID,
		Nickname:        p.Nickname,
		PublicID:        p.PublicID,
		TotalScore:      p.TotalScore,
		GamesPlayed:     p.GamesPlayed,
		BestScore:       p.BestScore,
		TotalStars:      p.TotalStars,
		BestTimeOverall: p.BestTimeOverall,
		BestTapTime:     p.BestTapTime,
		LevelProgress:   p.LevelProgress,
	}
}
