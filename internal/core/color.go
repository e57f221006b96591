package core

import "fmt"

// RGB is a 24-bit color used by screen cells.
// Frontends map it to truecolor escape sequences or image colors.
type RGB struct {
	R, G, B uint8
}

// Palette used when no asset covers a pixel.
var (
	ColorBackground = RGB{245, 245, 245} // flat fill when the background image is missing
	ColorAvatar     = RGB{220, 40, 40}
	ColorBarrier    = RGB{20, 20, 20}
	ColorText       = RGB{20, 20, 20}
	ColorLetterbox  = RGB{0, 0, 0}
)

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend returns the average of two colors.
func (c RGB) Blend(other RGB) RGB {
	return RGB{
		R: uint8((uint16(c.R) + uint16(other.R)) / 2),
		G: uint8((uint16(c.G) + uint16(other.G)) / 2),
		B: uint8((uint16(c.B) + uint16(other.B)) / 2),
	}
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var c RGB
	if len(s) != 6 {
		return c, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	if _, err := fmt.Sscanf(s, "%2x%2x%2x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
