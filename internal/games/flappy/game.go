// Package flappy implements the flappy-void simulation.
// A circular avatar falls under gravity and must pass through gaps in
// scrolling barriers. The package holds the fixed ruleset, the world state,
// the per-frame step and the session state machine; it knows nothing about
// terminals, windows or storage.
package flappy

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/flappy-void/internal/core"
)

// Playfield and physics constants. Units are pixels and seconds.
// The ruleset is fixed on purpose and is not read from configuration.
const (
	PlayfieldWidth  = 480.0
	PlayfieldHeight = 640.0

	AvatarDiameter = 32.0
	AvatarRadius   = AvatarDiameter / 2
	AvatarX        = 120.0 // Fixed horizontal position of the avatar center

	Gravity      = 900.0  // Downward acceleration, px/s²
	JumpVelocity = -300.0 // Velocity set by a jump (negative = up)
	MaxFallSpeed = 500.0  // Terminal velocity; upward speed is not capped

	TileSize      = 48.0
	BarrierWidth  = TileSize
	GapHeight     = 170.0
	ScrollSpeed   = 190.0 // px/s
	SpawnInterval = 1.5   // Seconds between obstacles
	SpawnMargin   = 30.0  // Obstacles appear this far past the right edge
	GapMargin     = 120.0 // Minimum distance of a gap center from the top/bottom

	// MaxFrameDelta caps the elapsed time fed into one step. After a long
	// stall an uncapped step would move barriers farther than the avatar's
	// diameter and let it pass through one without a collision.
	MaxFrameDelta = 0.25
)

// State is the session state.
type State int

const (
	StatePlaying State = iota
	StateDead
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// RunResult describes a finished run.
type RunResult struct {
	Score    int
	Duration time.Duration // Simulated time from start to crash
}

// GameOverFunc is called once for every run that ends in a crash.
type GameOverFunc func(RunResult)

// Session drives one player's game: it owns the current World, dispatches
// input through the PLAYING/DEAD transition table and steps the simulation
// once per frame.
type Session struct {
	world      *World
	rng        *rand.Rand
	state      State
	quit       bool
	elapsed    float64 // Simulated seconds in the current run
	runs       int     // Number of runs started, including the current one
	onGameOver GameOverFunc
}

// NewSession creates a session in the PLAYING state with a fresh world.
// A zero seed picks a time-based one.
func NewSession(seed int64) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		rng: rand.New(rand.NewSource(seed)),
	}
	s.reset()
	return s
}

// OnGameOver registers the callback fired when a run ends.
func (s *Session) OnGameOver(fn GameOverFunc) {
	s.onGameOver = fn
}

// reset replaces the world with a fresh one and returns to PLAYING.
func (s *Session) reset() {
	s.world = NewWorld(s.rng)
	s.state = StatePlaying
	s.elapsed = 0
	s.runs++
}

// Handle applies one discrete action.
// The primary action jumps while playing and restarts after a crash.
func (s *Session) Handle(a core.Action) {
	if s.quit {
		return
	}

	switch a {
	case core.ActionQuit:
		s.quit = true
	case core.ActionJump:
		switch s.state {
		case StatePlaying:
			s.world.Jump()
		case StateDead:
			s.reset()
		}
	}
}

// Frame runs one frame: pending actions in arrival order, then exactly one
// simulation step if the session is playing.
// It returns false once the session has been asked to quit.
func (s *Session) Frame(dt float64, in core.InputFrame) bool {
	for _, a := range in.Actions() {
		s.Handle(a)
		if s.quit {
			return false
		}
	}
	if s.quit {
		return false
	}

	if s.state == StatePlaying {
		s.advance(SanitizeDelta(dt))
	}
	return true
}

// advance steps the world and handles the PLAYING -> DEAD transition.
func (s *Session) advance(dt float64) {
	s.world.Step(dt)
	s.elapsed += dt
	if s.world.Alive {
		return
	}

	s.state = StateDead
	if s.onGameOver != nil {
		s.onGameOver(RunResult{
			Score:    s.world.Score,
			Duration: time.Duration(s.elapsed * float64(time.Second)),
		})
	}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Quit reports whether the session has been asked to end.
func (s *Session) Quit() bool {
	return s.quit
}

// Score returns the score of the current run.
func (s *Session) Score() int {
	return s.world.Score
}

// Runs returns how many runs were started in this session.
func (s *Session) Runs() int {
	return s.runs
}

// World exposes the current world. Callers must treat it as read-only.
func (s *Session) World() *World {
	return s.world
}

// SanitizeDelta guards the step input: negative or non-finite values become
// zero and large stalls are capped at MaxFrameDelta.
func SanitizeDelta(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		return MaxFrameDelta
	}
	return dt
}
