package flappy

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func newTestWorld(seed int64) *World {
	return NewWorld(rand.New(rand.NewSource(seed)))
}

func TestNewWorld(t *testing.T) {
	w := newTestWorld(1)

	if w.AvatarY != PlayfieldHeight/2 {
		t.Errorf("AvatarY = %v, expected %v", w.AvatarY, PlayfieldHeight/2)
	}
	if w.AvatarVelocity != 0 || w.SpawnTimer != 0 || w.Score != 0 {
		t.Errorf("fresh world should be zeroed, got v=%v timer=%v score=%d", w.AvatarVelocity, w.SpawnTimer, w.Score)
	}
	if !w.Alive {
		t.Error("fresh world should be alive")
	}
	if len(w.Obstacles) != 0 {
		t.Errorf("fresh world should have no obstacles, got %d", len(w.Obstacles))
	}
}

func TestWorldFirstSecondFallsOut(t *testing.T) {
	w := newTestWorld(1)

	w.Step(1.0)

	if w.AvatarVelocity != 500 {
		t.Errorf("AvatarVelocity = %v, expected 500 (clamped from 900)", w.AvatarVelocity)
	}
	if w.AvatarY != 820 {
		t.Errorf("AvatarY = %v, expected 820", w.AvatarY)
	}
	if w.Alive {
		t.Error("avatar below the playfield should be dead")
	}
	if len(w.Obstacles) != 0 {
		t.Errorf("no obstacle should spawn before the interval, got %d", len(w.Obstacles))
	}
}

func TestWorldGravityMonotonic(t *testing.T) {
	w := newTestWorld(7)
	dt := 1.0 / 60.0

	prev := w.AvatarVelocity
	for i := 0; i < 600 && w.Alive; i++ {
		w.Step(dt)
		if w.AvatarVelocity < prev {
			t.Fatalf("step %d: velocity decreased from %v to %v", i, prev, w.AvatarVelocity)
		}
		if w.AvatarVelocity > MaxFallSpeed {
			t.Fatalf("step %d: velocity %v exceeds terminal velocity", i, w.AvatarVelocity)
		}
		prev = w.AvatarVelocity
	}

	if w.Alive {
		t.Error("avatar that never jumps should eventually crash")
	}
}

func TestWorldJumpOverwritesVelocity(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
	}{
		{"at rest", 0},
		{"falling at terminal velocity", MaxFallSpeed},
		{"already rising", -120},
		{"rising faster than the jump", -900},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(1)
			w.AvatarVelocity = tc.velocity
			w.Jump()
			if w.AvatarVelocity != JumpVelocity {
				t.Errorf("AvatarVelocity = %v, expected %v", w.AvatarVelocity, JumpVelocity)
			}
		})
	}
}

func TestWorldUpwardVelocityNotClamped(t *testing.T) {
	w := newTestWorld(1)
	w.AvatarVelocity = -2000

	w.Step(0.01)

	if want := -2000 + Gravity*0.01; w.AvatarVelocity != want {
		t.Errorf("AvatarVelocity = %v, expected %v", w.AvatarVelocity, want)
	}
}

func TestWorldSpawnCadence(t *testing.T) {
	w := newTestWorld(3)
	// Cancel gravity over the first step so the avatar stays in place.
	w.AvatarVelocity = -Gravity * SpawnInterval

	w.Step(1.5)

	if len(w.Obstacles) != 1 {
		t.Fatalf("expected exactly one obstacle after %vs, got %d", SpawnInterval, len(w.Obstacles))
	}
	if w.SpawnTimer != 0 {
		t.Errorf("SpawnTimer = %v, expected reset to 0", w.SpawnTimer)
	}
	if want := PlayfieldWidth + SpawnMargin - ScrollSpeed*1.5; w.Obstacles[0].X != want {
		t.Errorf("new obstacle X = %v, expected %v after advancing", w.Obstacles[0].X, want)
	}

	w.Step(1.4)

	if len(w.Obstacles) != 1 {
		t.Errorf("no obstacle should spawn after 1.4s, got %d", len(w.Obstacles))
	}
	if math.Abs(w.SpawnTimer-1.4) > 1e-12 {
		t.Errorf("SpawnTimer = %v, expected 1.4", w.SpawnTimer)
	}
}

func TestWorldNoCatchUpSpawning(t *testing.T) {
	w := newTestWorld(3)
	w.AvatarVelocity = -Gravity * 4.5

	w.Step(4.5) // three intervals worth of time

	if len(w.Obstacles) > 1 {
		t.Errorf("at most one obstacle per step, got %d", len(w.Obstacles))
	}
}

func TestWorldGapCentersInRange(t *testing.T) {
	w := newTestWorld(42)

	for i := 0; i < 2000; i++ {
		g := w.nextGapCenter()
		if g < GapMargin || g > PlayfieldHeight-GapMargin {
			t.Fatalf("gap center %v outside [%v, %v]", g, GapMargin, PlayfieldHeight-GapMargin)
		}
		if g != math.Trunc(g) {
			t.Fatalf("gap center %v should be a whole pixel", g)
		}
	}
}

func TestWorldRetireOffscreen(t *testing.T) {
	w := newTestWorld(1)
	w.Obstacles = []Obstacle{
		{X: -BarrierWidth, GapCenter: 200},       // trailing edge exactly at 0: kept
		{X: -BarrierWidth - 0.5, GapCenter: 300}, // fully gone
		{X: 10, GapCenter: 400},
		{X: -500, GapCenter: 250},
	}

	w.retireOffscreen()

	want := []Obstacle{
		{X: -BarrierWidth, GapCenter: 200},
		{X: 10, GapCenter: 400},
	}
	if !reflect.DeepEqual(w.Obstacles, want) {
		t.Errorf("Obstacles = %+v, expected %+v", w.Obstacles, want)
	}
}

func TestWorldScoresOnce(t *testing.T) {
	w := newTestWorld(1)
	// Trailing edge one pixel right of the avatar center, gap around the avatar.
	w.Obstacles = []Obstacle{{X: AvatarX - BarrierWidth + 1, GapCenter: w.AvatarY}}

	w.Step(1.0 / 60.0)

	if !w.Alive {
		t.Fatal("avatar inside the gap should survive")
	}
	if w.Score != 1 || !w.Obstacles[0].Scored {
		t.Fatalf("obstacle should be scored once its trailing edge passes, score=%d", w.Score)
	}

	for i := 0; i < 29 && w.Alive; i++ {
		w.Step(1.0 / 60.0)
	}

	if w.Score != 1 {
		t.Errorf("Score = %d, expected 1: an obstacle scores at most once", w.Score)
	}
}

func TestWorldTrailingEdgeAtAvatarDoesNotScore(t *testing.T) {
	w := newTestWorld(1)
	w.Obstacles = []Obstacle{{X: AvatarX - BarrierWidth, GapCenter: w.AvatarY}}

	w.Step(0)

	if w.Score != 0 {
		t.Errorf("trailing edge exactly at the avatar should not score yet, got %d", w.Score)
	}
}

func TestWorldCollisionStopsPass(t *testing.T) {
	passed := Obstacle{X: 0, GapCenter: PlayfieldHeight / 2}
	blocking := Obstacle{X: 100, GapCenter: 100} // bottom barrier starts at 185

	t.Run("scoring before the hit is kept", func(t *testing.T) {
		w := newTestWorld(1)
		w.Obstacles = []Obstacle{passed, blocking}

		w.Step(0)

		if w.Alive {
			t.Error("avatar should hit the bottom barrier")
		}
		if w.Score != 1 {
			t.Errorf("Score = %d, expected 1", w.Score)
		}
	})

	t.Run("obstacles after the hit are skipped", func(t *testing.T) {
		w := newTestWorld(1)
		w.Obstacles = []Obstacle{blocking, passed}

		w.Step(0)

		if w.Alive {
			t.Error("avatar should hit the bottom barrier")
		}
		if w.Score != 0 || w.Obstacles[1].Scored {
			t.Errorf("Score = %d, expected 0 after short-circuit", w.Score)
		}
	})
}

func TestWorldBoundsDeath(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		alive bool
	}{
		{"touching top", AvatarRadius, false},
		{"above top", -5, false},
		{"just below top", AvatarRadius + 1, true},
		{"center", PlayfieldHeight / 2, true},
		{"just above bottom", PlayfieldHeight - AvatarRadius - 1, true},
		{"touching bottom", PlayfieldHeight - AvatarRadius, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(1)
			w.AvatarY = tc.y

			w.Step(0)

			if w.Alive != tc.alive {
				t.Errorf("Alive = %v, expected %v at y=%v", w.Alive, tc.alive, tc.y)
			}
		})
	}
}

func TestWorldDeathFreezesState(t *testing.T) {
	w := newTestWorld(5)
	w.Obstacles = []Obstacle{{X: 200, GapCenter: 300}, {X: 400, GapCenter: 250, Scored: false}}
	w.Score = 3
	w.SpawnTimer = 1.2
	w.AvatarVelocity = 480
	w.Alive = false

	before := *w
	before.Obstacles = append([]Obstacle(nil), w.Obstacles...)

	for _, dt := range []float64{0, 1.0 / 60.0, 1.5, 10} {
		w.Step(dt)
	}

	if w.AvatarY != before.AvatarY || w.AvatarVelocity != before.AvatarVelocity {
		t.Errorf("avatar moved after death: y %v->%v v %v->%v", before.AvatarY, w.AvatarY, before.AvatarVelocity, w.AvatarVelocity)
	}
	if w.SpawnTimer != before.SpawnTimer || w.Score != before.Score {
		t.Errorf("timer/score changed after death: timer %v->%v score %d->%d", before.SpawnTimer, w.SpawnTimer, before.Score, w.Score)
	}
	if !reflect.DeepEqual(w.Obstacles, before.Obstacles) {
		t.Errorf("obstacles changed after death: %+v -> %+v", before.Obstacles, w.Obstacles)
	}
}

func TestWorldSnapshotIsDetached(t *testing.T) {
	w := newTestWorld(1)
	w.Obstacles = []Obstacle{{X: 300, GapCenter: 320}}

	snap := w.Snapshot()
	w.Obstacles[0].X = 0

	if len(snap.Barriers) != 1 {
		t.Fatalf("expected 1 barrier, got %d", len(snap.Barriers))
	}
	if snap.Barriers[0].Top.X != 300 {
		t.Errorf("snapshot should not follow world changes, got X=%v", snap.Barriers[0].Top.X)
	}
	if snap.AvatarX != AvatarX || snap.AvatarRadius != AvatarRadius || !snap.Alive {
		t.Errorf("unexpected snapshot avatar %+v", snap)
	}
}
