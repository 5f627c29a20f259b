package game

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nbagirov/tapreflex/internal/domain"
)

// Play area geometry, matched to the mobile client's rendering constants.
const (
	TargetSize      = 64
	PlayAreaPadding = 16
	MinUsableSize   = 50
)

// displayTickInterval drives the elapsed-time display only. Scoring uses
// wall-clock start and end timestamps, never tick counts.
const displayTickInterval = 50 * time.Millisecond

// PlayArea is the full client play surface in display units.
type PlayArea struct {
	Width  int
	Height int
}

// usable returns the target-placement range: the surface minus padding and the
// target's own size, clamped so undersized surfaces still get a valid range.
func (a PlayArea) usable() (int, int) {
	w := a.Width - PlayAreaPadding*2 - TargetSize
	h := a.Height - PlayAreaPadding*2 - TargetSize
	if w < MinUsableSize {
		w = MinUsableSize
	}
	if h < MinUsableSize {
		h = MinUsableSize
	}
	return w, h
}

// Round runs one timed tap round: Idle until started, Running while targets
// remain, Finished once the hit count reaches the difficulty's target count.
// All methods are safe for concurrent use; hit and miss actions arriving after
// the round finishes are no-ops, so a tap delivered twice cannot double-count.
type Round struct {
	mu         sync.Mutex
	state      domain.RoundState
	difficulty domain.Difficulty
	area       PlayArea

	hits   int
	misses int
	target domain.TargetPosition

	startedAt time.Time
	displayMs atomic.Int64
	ticker    *time.Ticker
	tickDone  chan struct{}

	result *domain.RoundResult

	rng *rand.Rand
	now func() time.Time
}

// NewRound creates an idle round for one difficulty and play area.
func NewRound(difficulty domain.Difficulty, area PlayArea) *Round {
	return &Round{
		state:      domain.RoundStateIdle,
		difficulty: difficulty,
		area:       area,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
}

// Start resets all counters, places the first target and begins the display
// tick. Starting a running or finished round restarts it from scratch.
func (r *Round) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resetLocked()
	r.state = domain.RoundStateRunning
	r.startedAt = r.now()
	r.target = r.placeTargetLocked()
	r.startTickerLocked()
}

// Hit registers a tap on the current target. While targets remain it draws the
// next target position and returns (nil, false). The hit that reaches the
// target count finishes the round and returns the result, exactly once.
func (r *Round) Hit() (*domain.RoundResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != domain.RoundStateRunning {
		return nil, false
	}

	r.hits++
	if r.hits < r.difficulty.Targets() {
		r.target = r.placeTargetLocked()
		return nil, false
	}

	r.stopTickerLocked()
	r.state = domain.RoundStateFinished
	elapsed := r.now().Sub(r.startedAt).Milliseconds()
	r.displayMs.Store(elapsed)
	r.result = &domain.RoundResult{
		Hits:      r.hits,
		Misses:    r.misses,
		ElapsedMs: elapsed,
	}
	return r.result, true
}

// Miss registers a tap outside the current target. Ignored unless the round is
// running.
func (r *Round) Miss() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != domain.RoundStateRunning {
		return
	}
	r.misses++
}

// Reset returns the round to Idle and clears all round state. It must be
// called (directly or via Start) on teardown so the display ticker does not
// leak.
func (r *Round) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
}

// Snapshot reports the round as the client should render it.
func (r *Round) Snapshot() domain.RoundSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := domain.RoundSnapshot{
		State:      r.state,
		Difficulty: r.difficulty,
		Hits:       r.hits,
		Misses:     r.misses,
		ElapsedMs:  r.displayMs.Load(),
		Target:     r.target,
	}
	return snap
}

// Result returns the emitted round result, nil until the round finishes.
func (r *Round) Result() *domain.RoundResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// State returns the current lifecycle state.
func (r *Round) State() domain.RoundState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Round) resetLocked() {
	r.stopTickerLocked()
	r.state = domain.RoundStateIdle
	r.hits = 0
	r.misses = 0
	r.target = domain.TargetPosition{}
	r.startedAt = time.Time{}
	r.displayMs.Store(0)
	r.result = nil
}

// placeTargetLocked draws a uniformly random position inside the usable range.
func (r *Round) placeTargetLocked() domain.TargetPosition {
	w, h := r.area.usable()
	return domain.TargetPosition{
		X: r.rng.Intn(w) + PlayAreaPadding,
		Y: r.rng.Intn(h) + PlayAreaPadding,
	}
}

func (r *Round) startTickerLocked() {
	ticker := time.NewTicker(displayTickInterval)
	done := make(chan struct{})
	start := r.startedAt

	r.ticker = ticker
	r.tickDone = done

	go func() {
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				r.displayMs.Store(now.Sub(start).Milliseconds())
			}
		}
	}()
}

func (r *Round) stopTickerLocked() {
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	close(r.tickDone)
	r.ticker = nil
	r.tickDone = nil
}
