// Package window runs flappy-void in a desktop window with Ebitengine.
// The window shows the playfield at its native 480×640 logical size; the
// session steps once per Ebitengine update with a fixed delta of 1/TPS.
package window

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/flappy-void/internal/assets"
	"github.com/vovakirdan/flappy-void/internal/core"
	"github.com/vovakirdan/flappy-void/internal/games/flappy"
)

// Title is the window title.
const Title = "flappy-void"

const (
	scoreFontSize  = 32
	promptFontSize = 12
	restartPrompt  = "Press SPACE to restart"
)

// ScoreRecorder persists finished runs.
type ScoreRecorder interface {
	RecordScore(player string, score int, duration time.Duration) (int, error)
}

// Options configures a windowed game.
type Options struct {
	Assets     *assets.Assets // nil draws flat shapes
	Background core.RGB
	Text       core.RGB
	Seed       int64
	TPS        int
	Scale      int // Window size multiplier
	Recorder   ScoreRecorder
	Player     string
	Logger     *log.Logger
}

// Game implements ebiten.Game on top of a flappy.Session.
type Game struct {
	session *flappy.Session
	dt      float64

	background *ebiten.Image
	avatar     *ebiten.Image
	tile       *ebiten.Image

	scoreFace  *text.GoTextFace
	promptFace *text.GoTextFace
	bgColor    color.RGBA
	textColor  color.RGBA
}

// NewGame prepares the images and fonts and starts a session.
func NewGame(opts Options) (*Game, error) {
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return nil, fmt.Errorf("window: cannot load font: %w", err)
	}

	g := &Game{
		session:    flappy.NewSession(opts.Seed),
		dt:         1.0 / float64(opts.TPS),
		scoreFace:  &text.GoTextFace{Source: src, Size: scoreFontSize},
		promptFace: &text.GoTextFace{Source: src, Size: promptFontSize},
		bgColor:    assets.ToColor(opts.Background),
		textColor:  assets.ToColor(opts.Text),
	}

	if a := opts.Assets; a != nil {
		if a.Background != nil {
			g.background = ebiten.NewImageFromImage(a.Background)
		}
		if a.Avatar != nil {
			g.avatar = ebiten.NewImageFromImage(a.Avatar)
		}
		if a.Tile != nil {
			g.tile = ebiten.NewImageFromImage(a.Tile)
		}
	}

	g.session.OnGameOver(func(r flappy.RunResult) {
		if opts.Recorder == nil || opts.Player == "" {
			return
		}
		best, err := opts.Recorder.RecordScore(opts.Player, r.Score, r.Duration)
		if err != nil {
			opts.Logger.Warn("could not record score", "player", opts.Player, "score", r.Score, "error", err)
			return
		}
		opts.Logger.Info("run finished", "player", opts.Player, "score", r.Score, "best", best)
	})

	return g, nil
}

// Update polls the keyboard and runs one frame.
func (g *Game) Update() error {
	in := core.NewInputFrame()
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.Push(core.ActionQuit)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		in.Push(core.ActionJump)
	}

	if !g.session.Frame(g.dt, in) {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()

	if g.background != nil {
		screen.DrawImage(g.background, nil)
	} else {
		screen.Fill(g.bgColor)
	}

	for _, b := range snap.Barriers {
		g.drawBarrier(screen, b.Top)
		g.drawBarrier(screen, b.Bottom)
	}

	g.drawAvatar(screen, snap)

	g.drawText(screen, strconv.Itoa(snap.Score), g.scoreFace, 40)
	if snap.State == flappy.StateDead {
		g.drawText(screen, restartPrompt, g.promptFace, snap.Height/2+40)
	}
}

// drawBarrier fills rect with the tile, repeated from its top-left corner.
// Partial tiles at the right and bottom are clipped from the tile origin.
func (g *Game) drawBarrier(screen *ebiten.Image, rect core.Rect) {
	left, top := int(rect.X), int(rect.Y)
	right, bottom := int(rect.Right()), int(rect.Bottom())

	if g.tile == nil {
		vector.DrawFilledRect(screen, float32(left), float32(top), float32(right-left), float32(bottom-top),
			assets.ToColor(core.ColorBarrier), false)
		return
	}

	size := g.tile.Bounds().Dx()
	for y := top; y < bottom; y += size {
		h := min(size, bottom-y)
		for x := left; x < right; x += size {
			w := min(size, right-x)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x), float64(y))
			if w == size && h == size {
				screen.DrawImage(g.tile, op)
				continue
			}
			part := g.tile.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
			screen.DrawImage(part, op)
		}
	}
}

// drawAvatar blits the sprite at the truncated avatar position.
func (g *Game) drawAvatar(screen *ebiten.Image, snap flappy.Snapshot) {
	y := math.Trunc(snap.AvatarY)

	if g.avatar == nil {
		vector.DrawFilledCircle(screen, float32(snap.AvatarX), float32(y), float32(snap.AvatarRadius),
			assets.ToColor(core.ColorAvatar), true)
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(snap.AvatarX-snap.AvatarRadius, y-snap.AvatarRadius)
	screen.DrawImage(g.avatar, op)
}

// drawText draws a line centered on (PlayfieldWidth/2, y).
func (g *Game) drawText(screen *ebiten.Image, msg string, face *text.GoTextFace, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(flappy.PlayfieldWidth/2, y)
	op.ColorScale.ScaleWithColor(g.textColor)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, msg, face, op)
}

// Layout fixes the logical screen to the playfield; Ebitengine scales it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(flappy.PlayfieldWidth), int(flappy.PlayfieldHeight)
}

// Run opens the window and blocks until the player quits or closes it.
func Run(opts Options) error {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}

	g, err := NewGame(opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(int(flappy.PlayfieldWidth)*opts.Scale, int(flappy.PlayfieldHeight)*opts.Scale)
	ebiten.SetWindowTitle(Title)
	ebiten.SetTPS(opts.TPS)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
