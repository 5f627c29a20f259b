package domain

// PlayerSummary is the public slice of a profile exposed on leaderboards and
// search results. It mirrors the document shape the mobile client renders.
type PlayerSummary struct {
	UserID          string        `json:"id"`
	Nickname        string        `json:"nickname"`
	PublicID        string        `json:"publicId"`
	TotalScore      int64         `json:"totalScore"`
	GamesPlayed     int           `json:"gamesPlayed"`
	BestScore       int64         `json:"bestScore"`
	TotalStars      int           `json:"totalStars"`
	BestTimeOverall BestTime      `json:"bestTimeOverall"`
	BestTapTime     BestTime      `json:"bestTapTime"`
	LevelProgress   LevelProgress `json:"levelProgress"`
}

// LeaderboardEntry is a ranked row of a leaderboard view. Rank 1 is the first
// element of the view; ties keep the input's stable order.
type LeaderboardEntry struct {
	Rank       int           `json:"rank"`
	Player     PlayerSummary `json:"player"`
	AvgTapTime float64       `json:"avgTapTime"`
	// LevelBestTime is the best time at the requested difficulty; only set on
	// per-difficulty views.
	LevelBestTime float64 `json:"levelBestTime,omitempty"`
}

// LeaderboardUseCase produces read-only ranked and filterable views over the
// full profile collection. It never mutates profiles.
type LeaderboardUseCase interface {
	// GlobalRanking ranks by average tap time ascending; players with no set
	// times rank after everyone with data.
	GlobalRanking(limit int) ([]*LeaderboardEntry, error)
	// DifficultyRanking ranks by best time at one difficulty ascending;
	// players without a time at that difficulty are omitted.
	DifficultyRanking(difficulty Difficulty, limit int) ([]*LeaderboardEntry, error)
	// TopByTotalScore is the raw totalScore-descending export.
	TopByTotalScore(limit int) ([]*PlayerSummary, error)
	// SearchPlayers matches nickname or public id by case-sensitive prefix.
	SearchPlayers(term string, limit int) ([]*PlayerSummary, error)
}
