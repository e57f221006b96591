package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-void/internal/assets"
	"github.com/vovakirdan/flappy-void/internal/core"
	"github.com/vovakirdan/flappy-void/internal/games/flappy"
)

// RestartPrompt is shown while the session is dead.
const RestartPrompt = "Press SPACE to restart"

// Renderer projects a flappy.Snapshot onto a half-block Screen.
// Every terminal cell shows two vertically stacked playfield pixels; the
// playfield is scaled uniformly to fit and letterboxed in the middle.
type Renderer struct {
	assets     *assets.Assets // nil draws flat colors only
	background core.RGB
	text       core.RGB
}

// NewRenderer creates a renderer. a may be nil.
func NewRenderer(a *assets.Assets, background, text core.RGB) *Renderer {
	return &Renderer{assets: a, background: background, text: text}
}

// Viewport describes where the playfield lands on the pixel grid.
type Viewport struct {
	Scale   float64 // Pixels per playfield unit
	OffsetX int     // Left edge, in pixels (= columns)
	OffsetY int     // Top edge, in half-block pixels
	Width   int     // Scaled width in pixels
	Height  int     // Scaled height in pixels
}

// Fit computes the largest viewport that fits cols×(rows*2) pixels.
func Fit(cols, rows int, playW, playH float64) Viewport {
	pxW, pxH := float64(cols), float64(rows*2)
	scale := math.Min(pxW/playW, pxH/playH)
	if scale <= 0 || math.IsNaN(scale) {
		return Viewport{}
	}
	w := int(playW * scale)
	h := int(playH * scale)
	return Viewport{
		Scale:   scale,
		OffsetX: (cols - w) / 2,
		OffsetY: (rows*2 - h) / 2,
		Width:   w,
		Height:  h,
	}
}

// ToWorld maps the center of pixel (px, py) to playfield coordinates.
func (v Viewport) ToWorld(px, py int) (float64, float64) {
	return (float64(px-v.OffsetX) + 0.5) / v.Scale, (float64(py-v.OffsetY) + 0.5) / v.Scale
}

// Inside reports whether pixel (px, py) shows the playfield.
func (v Viewport) Inside(px, py int) bool {
	return px >= v.OffsetX && px < v.OffsetX+v.Width && py >= v.OffsetY && py < v.OffsetY+v.Height
}

// RowFor returns the screen row that shows playfield height y.
func (v Viewport) RowFor(y float64) int {
	return (v.OffsetY + int(y*v.Scale)) / 2
}

// Render draws the snapshot. The screen is cleared first.
func (r *Renderer) Render(screen *core.Screen, snap flappy.Snapshot) {
	screen.Clear()

	vp := Fit(screen.Width(), screen.Height(), snap.Width, snap.Height)
	if vp.Scale == 0 {
		return
	}

	for row := 0; row < screen.Height(); row++ {
		for col := 0; col < screen.Width(); col++ {
			upper := r.pixel(vp, snap, col, row*2)
			lower := r.pixel(vp, snap, col, row*2+1)
			screen.SetPixels(col, row, upper, lower)
		}
	}

	screen.DrawTextCentered(vp.RowFor(40), strconv.Itoa(snap.Score), r.text)
	if snap.State == flappy.StateDead {
		screen.DrawTextCentered(vp.RowFor(snap.Height/2+40), RestartPrompt, r.text)
	}
}

// pixel returns the color of one half-block pixel.
// Layers from the top: avatar, barriers, background.
func (r *Renderer) pixel(vp Viewport, snap flappy.Snapshot, px, py int) core.RGB {
	if !vp.Inside(px, py) {
		return core.ColorLetterbox
	}
	wx, wy := vp.ToWorld(px, py)

	if c, ok := r.avatarAt(snap, wx, wy); ok {
		return c
	}
	for _, b := range snap.Barriers {
		if b.Top.Contains(wx, wy) {
			return r.tileAt(b.Top, wx, wy)
		}
		if b.Bottom.Contains(wx, wy) {
			return r.tileAt(b.Bottom, wx, wy)
		}
	}
	if r.assets != nil && r.assets.Background != nil {
		return assets.ColorAt(r.assets.Background, int(wx), int(wy))
	}
	return r.background
}

// avatarAt samples the avatar sprite, which is drawn as a square with its
// top-left corner at the truncated avatar position. Without a sprite the
// avatar is a filled circle.
func (r *Renderer) avatarAt(snap flappy.Snapshot, wx, wy float64) (core.RGB, bool) {
	rad := snap.AvatarRadius
	left := snap.AvatarX - rad
	top := math.Trunc(snap.AvatarY) - rad

	if r.assets == nil || r.assets.Avatar == nil {
		dx, dy := wx-snap.AvatarX, wy-math.Trunc(snap.AvatarY)
		if dx*dx+dy*dy <= rad*rad {
			return core.ColorAvatar, true
		}
		return core.RGB{}, false
	}

	sx, sy := wx-left, wy-top
	if sx < 0 || sy < 0 || sx >= 2*rad || sy >= 2*rad {
		return core.RGB{}, false
	}
	return assets.ColorAt(r.assets.Avatar, int(sx), int(sy)), true
}

// tileAt samples the barrier tile repeated from the rectangle's origin.
func (r *Renderer) tileAt(rect core.Rect, wx, wy float64) core.RGB {
	if r.assets == nil || r.assets.Tile == nil {
		return core.ColorBarrier
	}
	size := r.assets.Tile.Bounds().Dx()
	tx := (int(wx) - int(rect.X)) % size
	ty := (int(wy) - int(rect.Y)) % size
	if tx < 0 {
		tx += size
	}
	if ty < 0 {
		ty += size
	}
	return assets.ColorAt(r.assets.Tile, tx, ty)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
// A nil lipgloss renderer uses the default one.
func RenderScreen(s *core.Screen, lr *lipgloss.Renderer) string {
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}
	styles := make(map[[2]core.RGB]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors for efficiency
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			key := [2]core.RGB{start.Fg, start.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[key]
			if !ok {
				style = lr.NewStyle().
					Foreground(lipgloss.Color(start.Fg.Hex())).
					Background(lipgloss.Color(start.Bg.Hex()))
				styles[key] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
