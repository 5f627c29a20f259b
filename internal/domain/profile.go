package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Difficulty is the fixed set of round sizes the game offers, keyed by target
// count. Free-form numeric levels are rejected at the boundary via
// ParseDifficulty.
type Difficulty int

const (
	Targets10 Difficulty = 10
	Targets20 Difficulty = 20
	Targets30 Difficulty = 30
	Targets40 Difficulty = 40
	Targets50 Difficulty = 50
)

// AllDifficulties returns every known difficulty in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Targets10, Targets20, Targets30, Targets40, Targets50}
}

// ParseDifficulty validates a raw target count against the known set.
func ParseDifficulty(targets int) (Difficulty, error) {
	switch d := Difficulty(targets); d {
	case Targets10, Targets20, Targets30, Targets40, Targets50:
		return d, nil
	default:
		return 0, NewAppError(ErrCodeInvalidDifficulty, fmt.Sprintf("unknown difficulty: %d targets", targets), 400, nil)
	}
}

// Targets returns the number of targets a round at this difficulty must clear.
func (d Difficulty) Targets() int {
	return int(d)
}

// BestTime is a best completion time in seconds. Zero is the unset sentinel:
// no round has been completed yet. Real times are always > 0, so the sentinel
// cannot collide with a genuine result.
type BestTime float64

// IsSet reports whether a real time has been recorded.
func (t BestTime) IsSet() bool {
	return t > 0
}

// Merge folds a new completion time into the best: adopt it when unset,
// otherwise keep the faster of the two. Best times only ever move downward
// once set.
func (t BestTime) Merge(seconds float64) BestTime {
	if !t.IsSet() {
		return BestTime(seconds)
	}
	if seconds < float64(t) {
		return BestTime(seconds)
	}
	return t
}

// Seconds returns the raw value, 0 when unset.
func (t BestTime) Seconds() float64 {
	return float64(t)
}

// LevelStat tracks a player's progress at a single difficulty.
type LevelStat struct {
	BestScore int64    `json:"bestScore"`
	BestTime  BestTime `json:"bestTime"`
	Stars     int      `json:"stars"`
	Completed bool     `json:"completed"`
}

// LevelProgress maps difficulty to per-level progress. Persisted as a JSONB
// document so the stored shape matches the profile documents the mobile client
// reads.
type LevelProgress map[Difficulty]LevelStat

// NewLevelProgress returns progress pre-populated with unset entries for every
// known difficulty.
func NewLevelProgress() LevelProgress {
	lp := make(LevelProgress, len(AllDifficulties()))
	for _, d := range AllDifficulties() {
		lp[d] = LevelStat{}
	}
	return lp
}

// Scan implements the sql.Scanner interface
func (lp *LevelProgress) Scan(value interface{}) error {
	if value == nil {
		*lp = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal level progress value: %v", value)
	}
	return json.Unmarshal(bytes, lp)
}

// Value implements the driver.Valuer interface
func (lp LevelProgress) Value() (driver.Value, error) {
	if lp == nil {
		return nil, nil
	}
	return json.Marshal(lp)
}

// UserProfile represents a registered player's cumulative record. It is owned
// by exactly one account and mutated only through the profile use case.
type UserProfile struct {
	UserID          string        `json:"userId" gorm:"primaryKey;column:user_id;type:varchar(64)"`
	PublicID        string        `json:"publicId" gorm:"index;type:varchar(16);not null"`
	Email           string        `json:"email" gorm:"type:varchar(128);not null"`
	Nickname        string        `json:"nickname" gorm:"index;type:varchar(32);not null"`
	TotalScore      int64         `json:"totalScore" gorm:"not null;default:0"`
	GamesPlayed     int           `json:"gamesPlayed" gorm:"not null;default:0"`
	BestScore       int64         `json:"bestScore" gorm:"not null;default:0"`
	TotalStars      int           `json:"totalStars" gorm:"not null;default:0"`
	BestTimeOverall BestTime      `json:"bestTimeOverall" gorm:"type:numeric(10,1);not null;default:0"`
	BestTapTime     BestTime      `json:"bestTapTime" gorm:"type:numeric(10,1);not null;default:0"`
	LevelProgress   LevelProgress `json:"levelProgress" gorm:"type:jsonb"`
	CreatedAt       time.Time     `json:"createdAt" gorm:"not null"`
	UpdatedAt       time.Time     `json:"updatedAt" gorm:"not null"`
}

// TableName specifies the table name for UserProfile
func (p UserProfile) TableName() string {
	return "players"
}

// AvgTapTime is the arithmetic mean of the set per-level best times, 0 when no
// level has a time yet. The global leaderboard ranks ascending on this value
// with 0 sorting last.
func (p *UserProfile) AvgTapTime() float64 {
	var sum float64
	var n int
	for _, d := range AllDifficulties() {
		if stat, ok := p.LevelProgress[d]; ok && stat.BestTime.IsSet() {
			sum += stat.BestTime.Seconds()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ProfileUpdates carries the caller-editable profile fields. Nil fields are
// left untouched.
type ProfileUpdates struct {
	Nickname *string `json:"nickname,omitempty"`
}

// RoundSubmission is the round metadata merged into a profile after a
// completed round.
type RoundSubmission struct {
	Level    Difficulty `json:"level"`
	GameType string     `json:"gameType"`
	Score    int64      `json:"score"`
	Time     float64    `json:"time"`
	Stars    int        `json:"stars"`
	Moves    int        `json:"moves"`
}

// ProfileRepository defines the interface for profile persistence
type ProfileRepository interface {
	GetByID(userID string) (*UserProfile, error)
	Create(profile *UserProfile) error
	Update(profile *UserProfile) error
	TopByTotalScore(limit int) ([]*UserProfile, error)
	SearchByNickname(prefix string, limit int) ([]*UserProfile, error)
	SearchByPublicID(prefix string, limit int) ([]*UserProfile, error)
	WithTransaction(tx *gorm.DB) ProfileRepository
}

// ProfileUseCase defines the interface for profile business logic
type ProfileUseCase interface {
	CreateProfile(userID, email, nickname string) (*UserProfile, error)
	GetProfile(userID string) (*UserProfile, error)
	UpdateProfile(userID string, updates ProfileUpdates) (*UserProfile, error)
	RecordRoundResult(userID string, submission RoundSubmission) error
	History(userID string, limit int) ([]*HistoryEntry, error)
}
