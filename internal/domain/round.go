package domain

// RoundState is the lifecycle of a live round.
type RoundState string

const (
	RoundStateIdle     RoundState = "idle"
	RoundStateRunning  RoundState = "running"
	RoundStateFinished RoundState = "finished"
)

// RoundResult is the raw telemetry of one finished round. Produced once by the
// round engine and consumed once by the score calculator.
type RoundResult struct {
	Hits      int   `json:"hits"`
	Misses    int   `json:"misses"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// ScoreOutcome is the derived result of a round.
type ScoreOutcome struct {
	Score           int64   `json:"score"`
	TimeSeconds     float64 `json:"timeSeconds"`
	AccuracyPercent int     `json:"accuracyPercent"`
	Stars           int     `json:"stars"`
}

// TargetPosition is the top-left coordinate of the current target inside the
// play area.
type TargetPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RoundSnapshot is a view of a player's active round returned to the client
// after every action.
type RoundSnapshot struct {
	State      RoundState     `json:"state"`
	Difficulty Difficulty     `json:"difficulty"`
	Hits       int            `json:"hits"`
	Misses     int            `json:"misses"`
	ElapsedMs  int64          `json:"elapsedMs"`
	Target     TargetPosition `json:"target"`
	Outcome    *ScoreOutcome  `json:"outcome,omitempty"`
	Persisted  bool           `json:"persisted"`
}

// RoundUseCase manages the single active round per player session.
type RoundUseCase interface {
	Start(userID string, difficulty Difficulty) (*RoundSnapshot, error)
	Hit(userID string) (*RoundSnapshot, error)
	Miss(userID string) (*RoundSnapshot, error)
	Current(userID string) (*RoundSnapshot, error)
	Shutdown()
}
