package core

import (
	"strings"
)

// HalfBlock is the glyph used to show two vertically stacked pixels in one
// cell: the foreground paints the upper half, the background the lower half.
const HalfBlock = '▀'

// Cell is a single character cell with its colors.
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Screen is a 2D cell buffer for rendering game graphics.
// It decouples rendering from the terminal: the renderer writes runes and
// colors, the platform layer turns rows into styled strings.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// PixelHeight returns the number of half-block pixel rows.
func (s *Screen) PixelHeight() int {
	return s.height * 2
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with blank cells on the letterbox color.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' ', Fg: ColorText, Bg: ColorLetterbox}
		}
	}
}

// Set places a rune at the given position, keeping the cell colors.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x].Rune = r
}

// SetCell replaces the whole cell at the given position.
func (s *Screen) SetCell(x, y int, c Cell) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if !s.inBounds(x, y) {
		return ' '
	}
	return s.cells[y][x].Rune
}

// GetCell returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inBounds(x, y) {
		return Cell{Rune: ' ', Fg: ColorText, Bg: ColorLetterbox}
	}
	return s.cells[y][x]
}

// SetPixels paints the two half-block pixels of cell (x, y).
func (s *Screen) SetPixels(x, y int, upper, lower RGB) {
	s.SetCell(x, y, Cell{Rune: HalfBlock, Fg: upper, Bg: lower})
}

// DrawText writes a string horizontally starting at (x, y) in the given
// color. The background behind each glyph becomes the blend of the two
// pixels it covers so text stays readable over sprites.
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, fg RGB) {
	i := 0
	for _, r := range text {
		cx := x + i
		i++
		if !s.inBounds(cx, y) {
			continue
		}
		c := s.cells[y][cx]
		bg := c.Bg
		if c.Rune == HalfBlock {
			bg = c.Fg.Blend(c.Bg)
		}
		s.cells[y][cx] = Cell{Rune: r, Fg: fg, Bg: bg}
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, fg RGB) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text, fg)
}

// String converts the screen buffer to plain runes, one line per row.
// Colors are dropped; the platform layer applies them.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the runes of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	runes := make([]rune, s.width)
	for x, c := range s.cells[y] {
		runes[x] = c.Rune
	}
	return string(runes)
}

func (s *Screen) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}
