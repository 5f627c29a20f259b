package game

import (
	"math"

	"github.com/nbagirov/tapreflex/internal/domain"
)

// Star thresholds as a fraction of the round's base score.
const (
	threeStarRatio = 0.9
	twoStarRatio   = 0.75
)

// Score derives the outcome of a finished round from its raw telemetry. It is
// a pure function: replaying the same result always yields the same outcome.
//
// Scoring: each target is worth 1000 points, 1 point is lost per 20ms elapsed
// and 50 per miss, floored at zero.
func Score(result domain.RoundResult, difficulty domain.Difficulty) domain.ScoreOutcome {
	base := int64(difficulty.Targets()) * 1000
	timePenalty := result.ElapsedMs / 20
	missPenalty := int64(result.Misses) * 50

	score := base - timePenalty - missPenalty
	if score < 0 {
		score = 0
	}

	// Finished rounds always carry a positive time: the merge path uses 0 as
	// the "no time yet" sentinel, so sub-50ms telemetry rounds up to 0.1s
	// instead of rounding down to it.
	timeSeconds := math.Round(float64(result.ElapsedMs)/100) / 10
	if timeSeconds < 0.1 {
		timeSeconds = 0.1
	}

	// A round only finishes once hits reach the target count, so hits is never
	// zero here; the guard keeps the function total anyway.
	accuracyPercent := 0
	if result.Hits > 0 {
		accuracy := float64(result.Hits) / float64(result.Hits+result.Misses)
		accuracyPercent = int(math.Round(accuracy * 100))
	}

	stars := 1
	switch {
	case float64(score) >= float64(base)*threeStarRatio:
		stars = 3
	case float64(score) >= float64(base)*twoStarRatio:
		stars = 2
	}

	return domain.ScoreOutcome{
		Score:           score,
		TimeSeconds:     timeSeconds,
		AccuracyPercent: accuracyPercent,
		Stars:           stars,
	}
}
