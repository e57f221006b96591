package flappy

import (
	"github.com/vovakirdan/flappy-void/internal/core"
)

// Obstacle is one scrolling barrier pair with a passable vertical gap.
type Obstacle struct {
	X         float64 // Leading (left) edge, decreases every tick
	GapCenter float64 // Vertical midpoint of the gap, fixed at spawn
	Scored    bool    // Whether the avatar has passed this obstacle
}

// NewObstacle creates an obstacle just beyond the right edge of the playfield.
func NewObstacle(gapCenter float64) Obstacle {
	return Obstacle{
		X:         PlayfieldWidth + SpawnMargin,
		GapCenter: gapCenter,
	}
}

// Advance scrolls the obstacle left by ScrollSpeed*dt.
func (o *Obstacle) Advance(dt float64) {
	o.X -= ScrollSpeed * dt
}

// TrailingEdge returns the x-coordinate of the obstacle's right edge.
func (o Obstacle) TrailingEdge() float64 {
	return o.X + BarrierWidth
}

// IsOffscreen reports whether the trailing edge has fully left the playfield.
func (o Obstacle) IsOffscreen() bool {
	return o.TrailingEdge() < 0
}

// BarrierRects returns the top and bottom barrier rectangles.
// The top barrier spans from the top of the playfield to the gap, the
// bottom one from the gap to the playfield bottom.
func (o Obstacle) BarrierRects() (top, bottom core.Rect) {
	gapTop := o.GapCenter - GapHeight/2
	gapBottom := o.GapCenter + GapHeight/2
	top = core.NewRect(o.X, 0, BarrierWidth, gapTop)
	bottom = core.NewRect(o.X, gapBottom, BarrierWidth, PlayfieldHeight-gapBottom)
	return top, bottom
}
