package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/flappy-void/internal/core"
)

// World is the mutable simulation snapshot of one run.
// A World is never reused across runs: a reset builds a new one.
type World struct {
	AvatarY        float64    // Avatar center, the x position is fixed at AvatarX
	AvatarVelocity float64    // Positive is downward
	Obstacles      []Obstacle // Live obstacles in spawn order
	SpawnTimer     float64    // Seconds since the last spawn
	Score          int        // Obstacles passed this run
	Alive          bool       // False once the avatar crashed

	rng *rand.Rand
}

// NewWorld returns the starting state of a run.
// Gap centers are drawn from rng; a nil rng uses the global source.
func NewWorld(rng *rand.Rand) *World {
	return &World{
		AvatarY:   PlayfieldHeight / 2,
		Obstacles: make([]Obstacle, 0, 8),
		Alive:     true,
		rng:       rng,
	}
}

// Jump overwrites the vertical velocity with the jump impulse.
// It is not additive and ignores the current velocity.
func (w *World) Jump() {
	w.AvatarVelocity = JumpVelocity
}

// Step advances the world by dt seconds.
// dt must be finite and non-negative. Nothing changes once the avatar is dead.
func (w *World) Step(dt float64) {
	if !w.Alive {
		return
	}

	w.integrate(dt)
	w.scheduleSpawn(dt)

	for i := range w.Obstacles {
		w.Obstacles[i].Advance(dt)
	}
	w.retireOffscreen()

	// Scoring has to see post-movement positions
	w.resolveObstacles()
	w.checkBounds()
}

// integrate applies gravity, clamped at the terminal fall speed only.
func (w *World) integrate(dt float64) {
	w.AvatarVelocity = math.Min(w.AvatarVelocity+Gravity*dt, MaxFallSpeed)
	w.AvatarY += w.AvatarVelocity * dt
}

// scheduleSpawn appends at most one obstacle per step, with no catch-up.
func (w *World) scheduleSpawn(dt float64) {
	w.SpawnTimer += dt
	if w.SpawnTimer >= SpawnInterval {
		w.SpawnTimer = 0
		w.Obstacles = append(w.Obstacles, NewObstacle(w.nextGapCenter()))
	}
}

// nextGapCenter draws a whole-pixel gap center from [GapMargin, PlayfieldHeight-GapMargin].
func (w *World) nextGapCenter() float64 {
	span := int(PlayfieldHeight-2*GapMargin) + 1
	var n int
	if w.rng != nil {
		n = w.rng.Intn(span)
	} else {
		n = rand.Intn(span)
	}
	return GapMargin + float64(n)
}

// retireOffscreen removes obstacles that left the playfield, keeping order.
func (w *World) retireOffscreen() {
	kept := w.Obstacles[:0]
	for _, o := range w.Obstacles {
		if !o.IsOffscreen() {
			kept = append(kept, o)
		}
	}
	w.Obstacles = kept
}

// resolveObstacles runs collision then scoring for each obstacle in spawn order.
// The first hit ends the run; obstacles scored earlier in the pass stay scored.
func (w *World) resolveObstacles() {
	for i := range w.Obstacles {
		o := &w.Obstacles[i]

		top, bottom := o.BarrierRects()
		if core.CircleIntersectsRect(AvatarX, w.AvatarY, AvatarRadius, top) ||
			core.CircleIntersectsRect(AvatarX, w.AvatarY, AvatarRadius, bottom) {
			w.Alive = false
			return
		}

		if !o.Scored && o.TrailingEdge() < AvatarX {
			o.Scored = true
			w.Score++
		}
	}
}

// checkBounds kills the avatar when it touches the top or bottom edge.
func (w *World) checkBounds() {
	if w.AvatarY-AvatarRadius <= 0 || w.AvatarY+AvatarRadius >= PlayfieldHeight {
		w.Alive = false
	}
}
