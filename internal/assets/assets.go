// Package assets loads the three images the game draws: the optional
// background, the avatar sprite and the barrier tile. Images are decoded and
// resized once at startup; frontends only sample the prepared bitmaps.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register decoders
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/vovakirdan/flappy-void/internal/core"
	"github.com/vovakirdan/flappy-void/internal/games/flappy"
)

// Fixed asset file names, resolved relative to the asset directory.
const (
	BackgroundFile = "map.jpg"
	AvatarFile     = "zm.jpg"
	TileFile       = "sld.jpg"
)

// ErrEmptyImage is returned for images with a zero width or height.
var ErrEmptyImage = errors.New("image has no pixels")

// Assets holds the decoded, resized images.
type Assets struct {
	Background *image.RGBA // Playfield-sized, nil means flat fill
	Avatar     *image.RGBA // AvatarDiameter square
	Tile       *image.RGBA // TileSize square
}

// Load reads the assets from dir.
// A missing or unreadable avatar or tile is fatal and the returned error
// names the file. A missing background is logged and replaced by a flat fill.
func Load(dir string, logger *log.Logger) (*Assets, error) {
	if logger == nil {
		logger = log.Default()
	}

	a := &Assets{}

	avatarPath := filepath.Join(dir, AvatarFile)
	avatar, err := decodeFile(avatarPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", avatarPath, err)
	}
	a.Avatar = Scale(avatar, int(flappy.AvatarDiameter), int(flappy.AvatarDiameter))

	tilePath := filepath.Join(dir, TileFile)
	tile, err := decodeFile(tilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", tilePath, err)
	}
	a.Tile = Scale(tile, int(flappy.TileSize), int(flappy.TileSize))

	bgPath := filepath.Join(dir, BackgroundFile)
	bg, err := decodeFile(bgPath)
	if err != nil {
		logger.Debug("background unavailable, using flat fill", "path", bgPath, "error", err)
		return a, nil
	}
	a.Background = Cover(bg, int(flappy.PlayfieldWidth), int(flappy.PlayfieldHeight))

	logger.Debug("assets loaded", "dir", dir, "background", a.Background != nil)
	return a, nil
}

// decodeFile opens and decodes an image in any registered format.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}
	return img, nil
}

// Scale resizes src to exactly w×h with a smooth filter.
func Scale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Cover scales src to cover a w×h canvas while keeping its aspect ratio and
// centers it; the overflowing sides are cropped.
func Cover(src image.Image, w, h int) *image.RGBA {
	sb := src.Bounds()
	scale := max(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	sw := int(float64(sb.Dx()) * scale)
	sh := int(float64(sb.Dy()) * scale)
	x := (w - sw) / 2
	y := (h - sh) / 2

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, image.Rect(x, y, x+sw, y+sh), src, sb, draw.Src, nil)
	return dst
}

// ColorAt returns the color of img at (x, y) as an opaque RGB.
// Coordinates are clamped to the image bounds.
func ColorAt(img *image.RGBA, x, y int) core.RGB {
	b := img.Bounds()
	x = core.Clamp(x, b.Min.X, b.Max.X-1)
	y = core.Clamp(y, b.Min.Y, b.Max.Y-1)
	c := img.RGBAAt(x, y)
	return core.RGB{R: c.R, G: c.G, B: c.B}
}

// ToColor converts an RGB to a standard library color.
func ToColor(c core.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
