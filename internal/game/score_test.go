package game

import (
	"testing"

	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name            string
		difficulty      domain.Difficulty
		result          domain.RoundResult
		wantScore       int64
		wantTimeSeconds float64
		wantAccuracy    int
		wantStars       int
	}{
		{
			name:            "CleanRound",
			difficulty:      domain.Targets10,
			result:          domain.RoundResult{Hits: 10, Misses: 0, ElapsedMs: 5000},
			wantScore:       9750,
			wantTimeSeconds: 5.0,
			wantAccuracy:    100,
			wantStars:       3,
		},
		{
			name:            "FiveMisses",
			difficulty:      domain.Targets10,
			result:          domain.RoundResult{Hits: 10, Misses: 5, ElapsedMs: 12000},
			wantScore:       9150,
			wantTimeSeconds: 12.0,
			wantAccuracy:    67,
			wantStars:       3,
		},
		{
			name:            "ExactThreeStarThreshold",
			difficulty:      domain.Targets10,
			result:          domain.RoundResult{Hits: 10, Misses: 0, ElapsedMs: 20000},
			wantScore:       9000,
			wantTimeSeconds: 20.0,
			wantAccuracy:    100,
			wantStars:       3,
		},
		{
			name:            "ExactTwoStarThreshold",
			difficulty:      domain.Targets10,
			result:          domain.RoundResult{Hits: 10, Misses: 0, ElapsedMs: 50000},
			wantScore:       7500,
			wantTimeSeconds: 50.0,
			wantAccuracy:    100,
			wantStars:       2,
		},
		{
			name:            "JustBelowTwoStars",
			difficulty:      domain.Targets10,
			result:          domain.RoundResult{Hits: 10, Misses: 0, ElapsedMs: 50020},
			wantScore:       7499,
			wantTimeSeconds: 50.0,
			wantAccuracy:    100,
			wantStars:       1,
		},
		{
			name:            "ScoreFlooredAtZero",
			difficulty:      domain.Targets10,
			result:          domain.RoundResult{Hits: 10, Misses: 100, ElapsedMs: 300000},
			wantScore:       0,
			wantTimeSeconds: 300.0,
			wantAccuracy:    9,
			wantStars:       1,
		},
		{
			name:            "FiftyTargets",
			difficulty:      domain.Targets50,
			result:          domain.RoundResult{Hits: 50, Misses: 2, ElapsedMs: 30000},
			wantScore:       48400,
			wantTimeSeconds: 30.0,
			wantAccuracy:    96,
			wantStars:       3,
		},
		{
			name:            "InstantRoundKeepsPositiveTime",
			difficulty:      domain.Targets10,
			result:          domain.RoundResult{Hits: 10, Misses: 0, ElapsedMs: 40},
			wantScore:       9998,
			wantTimeSeconds: 0.1,
			wantAccuracy:    100,
			wantStars:       3,
		},
		{
			name:            "TimeRoundsToTenth",
			difficulty:      domain.Targets10,
			result:          domain.RoundResult{Hits: 10, Misses: 0, ElapsedMs: 5349},
			wantScore:       10000 - 267,
			wantTimeSeconds: 5.3,
			wantAccuracy:    100,
			wantStars:       3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.result, tt.difficulty)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantTimeSeconds, got.TimeSeconds)
			assert.Equal(t, tt.wantAccuracy, got.AccuracyPercent)
			assert.Equal(t, tt.wantStars, got.Stars)
		})
	}
}

func TestScoreNeverNegative(t *testing.T) {
	for _, d := range domain.AllDifficulties() {
		for _, misses := range []int{0, 1, 50, 10000} {
			for _, elapsed := range []int64{0, 19, 20, 999999, 100000000} {
				got := Score(domain.RoundResult{Hits: d.Targets(), Misses: misses, ElapsedMs: elapsed}, d)
				assert.GreaterOrEqual(t, got.Score, int64(0))
			}
		}
	}
}

func TestScoreTimeAlwaysPositive(t *testing.T) {
	// 0 is the "no time yet" sentinel in best-time merges, so even a scripted
	// instant round must carry a submittable positive time.
	for _, elapsed := range []int64{0, 1, 40, 49, 50, 51} {
		got := Score(domain.RoundResult{Hits: 10, Misses: 0, ElapsedMs: elapsed}, domain.Targets10)
		assert.GreaterOrEqual(t, got.TimeSeconds, 0.1)
	}
}

func TestScoreStarsMonotonicInScore(t *testing.T) {
	// Faster rounds never earn fewer stars.
	prevStars := 1
	for elapsed := int64(60000); elapsed >= 0; elapsed -= 500 {
		got := Score(domain.RoundResult{Hits: 10, Misses: 0, ElapsedMs: elapsed}, domain.Targets10)
		assert.GreaterOrEqual(t, got.Stars, prevStars)
		prevStars = got.Stars
	}
}

func TestScoreIdempotent(t *testing.T) {
	result := domain.RoundResult{Hits: 20, Misses: 3, ElapsedMs: 14321}
	first := Score(result, domain.Targets20)
	second := Score(result, domain.Targets20)
	assert.Equal(t, first, second)
}

func TestScoreZeroHitsDoesNotPanic(t *testing.T) {
	got := Score(domain.RoundResult{Hits: 0, Misses: 4, ElapsedMs: 1000}, domain.Targets10)
	assert.Equal(t, 0, got.AccuracyPercent)
}
