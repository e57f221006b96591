package flappy

import "github.com/vovakirdan/flappy-void/internal/core"

// Barrier is the render view of one obstacle.
type Barrier struct {
	Top    core.Rect
	Bottom core.Rect
	Scored bool
}

// Snapshot is a read-only copy of everything a renderer needs.
// It shares no memory with the world it was taken from.
type Snapshot struct {
	Width, Height float64 // Playfield size
	AvatarX       float64
	AvatarY       float64
	AvatarRadius  float64
	Barriers      []Barrier
	Score         int
	Alive         bool
	State         State
}

// Snapshot captures the world for rendering.
func (w *World) Snapshot() Snapshot {
	barriers := make([]Barrier, len(w.Obstacles))
	for i, o := range w.Obstacles {
		top, bottom := o.BarrierRects()
		barriers[i] = Barrier{Top: top, Bottom: bottom, Scored: o.Scored}
	}

	state := StatePlaying
	if !w.Alive {
		state = StateDead
	}

	return Snapshot{
		Width:        PlayfieldWidth,
		Height:       PlayfieldHeight,
		AvatarX:      AvatarX,
		AvatarY:      w.AvatarY,
		AvatarRadius: AvatarRadius,
		Barriers:     barriers,
		Score:        w.Score,
		Alive:        w.Alive,
		State:        state,
	}
}

// Snapshot captures the session's current world for rendering.
func (s *Session) Snapshot() Snapshot {
	snap := s.world.Snapshot()
	snap.State = s.state
	return snap
}
