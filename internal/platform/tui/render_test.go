package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy-void/internal/assets"
	"github.com/vovakirdan/flappy-void/internal/core"
	"github.com/vovakirdan/flappy-void/internal/games/flappy"
)

// 48×32 cells give 48×64 pixels: exactly a tenth of the playfield.
const (
	testCols = 48
	testRows = 32
)

func testSnapshot() flappy.Snapshot {
	top, bottom := flappy.Obstacle{X: 200, GapCenter: 320}.BarrierRects()
	return flappy.Snapshot{
		Width:        flappy.PlayfieldWidth,
		Height:       flappy.PlayfieldHeight,
		AvatarX:      flappy.AvatarX,
		AvatarY:      320,
		AvatarRadius: flappy.AvatarRadius,
		Barriers:     []flappy.Barrier{{Top: top, Bottom: bottom}},
		Score:        7,
		Alive:        true,
		State:        flappy.StatePlaying,
	}
}

func solid(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		expected   Viewport
	}{
		{"exact tenth", 48, 32, Viewport{Scale: 0.1, OffsetX: 0, OffsetY: 0, Width: 48, Height: 64}},
		{"wide terminal letterboxes sides", 100, 32, Viewport{Scale: 0.1, OffsetX: 26, OffsetY: 0, Width: 48, Height: 64}},
		{"tall terminal letterboxes top", 48, 40, Viewport{Scale: 0.1, OffsetX: 0, OffsetY: 8, Width: 48, Height: 64}},
		{"zero size", 0, 0, Viewport{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fit(tc.cols, tc.rows, flappy.PlayfieldWidth, flappy.PlayfieldHeight)
			if got != tc.expected {
				t.Errorf("Fit(%d, %d) = %+v, expected %+v", tc.cols, tc.rows, got, tc.expected)
			}
		})
	}
}

func TestRenderFlatColors(t *testing.T) {
	screen := core.NewScreen(testCols, testRows)
	r := NewRenderer(nil, core.ColorBackground, core.ColorText)

	r.Render(screen, testSnapshot())

	// Avatar center (120, 320) is pixel (12, 32): upper half of row 16.
	if c := screen.GetCell(12, 16); c.Rune != core.HalfBlock || c.Fg != core.ColorAvatar {
		t.Errorf("avatar cell = %+v, expected avatar color on top", c)
	}
	// Top barrier covers x 200..248, y 0..235.
	if c := screen.GetCell(21, 5); c.Fg != core.ColorBarrier || c.Bg != core.ColorBarrier {
		t.Errorf("top barrier cell = %+v, expected barrier color", c)
	}
	// Bottom barrier starts at y 405: pixel 40, row 20.
	if c := screen.GetCell(21, 25); c.Fg != core.ColorBarrier {
		t.Errorf("bottom barrier cell = %+v, expected barrier color", c)
	}
	// Inside the gap.
	if c := screen.GetCell(21, 16); c.Fg != core.ColorBackground || c.Bg != core.ColorBackground {
		t.Errorf("gap cell = %+v, expected background", c)
	}
	// Open sky.
	if c := screen.GetCell(40, 10); c.Fg != core.ColorBackground {
		t.Errorf("sky cell = %+v, expected background", c)
	}
}

func TestRenderScoreAndPrompt(t *testing.T) {
	screen := core.NewScreen(testCols, testRows)
	r := NewRenderer(nil, core.ColorBackground, core.ColorText)
	snap := testSnapshot()

	r.Render(screen, snap)

	// Score is centered at y=40: pixel 4, row 2.
	if got := screen.Get(23, 2); got != '7' {
		t.Errorf("score glyph = %q, expected '7'", got)
	}
	if c := screen.GetCell(23, 2); c.Fg != core.ColorText {
		t.Errorf("score color = %v, expected text color", c.Fg)
	}
	if strings.Contains(screen.String(), RestartPrompt) {
		t.Error("prompt should only show while dead")
	}

	snap.State = flappy.StateDead
	snap.Alive = false
	r.Render(screen, snap)

	// Prompt is centered at y = 320 + 40: pixel 36, row 18.
	if !strings.Contains(screen.Row(18), RestartPrompt) {
		t.Errorf("row 18 = %q, expected the restart prompt", screen.Row(18))
	}
}

func TestRenderLetterbox(t *testing.T) {
	screen := core.NewScreen(100, testRows)
	r := NewRenderer(nil, core.ColorBackground, core.ColorText)

	r.Render(screen, testSnapshot())

	if c := screen.GetCell(0, 10); c.Fg != core.ColorLetterbox || c.Bg != core.ColorLetterbox {
		t.Errorf("left margin = %+v, expected letterbox", c)
	}
	if c := screen.GetCell(99, 10); c.Fg != core.ColorLetterbox {
		t.Errorf("right margin = %+v, expected letterbox", c)
	}
	if c := screen.GetCell(26+40, 10); c.Fg != core.ColorBackground {
		t.Errorf("playfield cell = %+v, expected background", c)
	}
}

func TestRenderWithAssets(t *testing.T) {
	red := color.RGBA{200, 0, 0, 255}
	green := color.RGBA{0, 150, 0, 255}
	blue := color.RGBA{0, 0, 180, 255}

	a := &assets.Assets{
		Background: image.NewRGBA(image.Rect(0, 0, 480, 640)),
		Avatar:     solid(32, red),
		Tile:       solid(48, green),
	}
	for y := 0; y < 640; y++ {
		for x := 0; x < 480; x++ {
			a.Background.SetRGBA(x, y, blue)
		}
	}

	screen := core.NewScreen(testCols, testRows)
	r := NewRenderer(a, core.ColorBackground, core.ColorText)
	r.Render(screen, testSnapshot())

	if c := screen.GetCell(12, 16); c.Fg != (core.RGB{R: 200}) {
		t.Errorf("avatar sprite pixel = %v, expected red", c.Fg)
	}
	// The sprite is square, so its corner is drawn too: world (105, 305).
	if c := screen.GetCell(10, 15); c.Fg != (core.RGB{R: 200}) {
		t.Errorf("sprite corner = %v, expected red", c.Fg)
	}
	if c := screen.GetCell(21, 5); c.Fg != (core.RGB{G: 150}) {
		t.Errorf("barrier pixel = %v, expected tile green", c.Fg)
	}
	if c := screen.GetCell(40, 10); c.Fg != (core.RGB{B: 180}) {
		t.Errorf("background pixel = %v, expected blue", c.Fg)
	}
}

func TestRenderTinyScreen(t *testing.T) {
	screen := core.NewScreen(0, 0)
	r := NewRenderer(nil, core.ColorBackground, core.ColorText)

	// Must not panic.
	r.Render(screen, testSnapshot())
}

func TestRenderScreenPlainText(t *testing.T) {
	screen := core.NewScreen(4, 2)
	screen.Clear()
	screen.DrawText(0, 0, "ab", core.ColorText)

	out := RenderScreen(screen, nil)

	if !strings.Contains(out, "ab") {
		t.Errorf("rendered output %q should contain the text", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}
