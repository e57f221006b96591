// Package config provides YAML-based configuration loading for flappy-void.
// Only presentation, storage and server settings live here; the game
// ruleset is fixed in the flappy package.
package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/flappy-void/internal/core"
	"github.com/vovakirdan/flappy-void/internal/storage"
)

// Config is the top-level configuration document.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Assets  AssetsConfig  `yaml:"assets"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Player  PlayerConfig  `yaml:"player"`
}

// DisplayConfig defines how frames are presented.
type DisplayConfig struct {
	FPS             int    `yaml:"fps"`
	BackgroundColor string `yaml:"background_color"` // Hex, used when map.jpg is missing
	TextColor       string `yaml:"text_color"`       // Hex, score and prompt
	ScaleWindow     int    `yaml:"scale_window"`     // Window frontend only; 1 = native size
}

// AssetsConfig locates the image files.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// StorageConfig defines where scores are persisted.
type StorageConfig struct {
	DBPath   string `yaml:"db_path"`
	Disabled bool   `yaml:"disabled"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
}

// PlayerConfig identifies the local player on the leaderboard.
type PlayerConfig struct {
	Name string `yaml:"name"`
}

// Validation limits.
const (
	MinFPS = 10
	MaxFPS = 240

	MaxPlayerNameLen = storage.MaxPlayerLen
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Validate checks the values a frontend cannot run without.
func (c Config) Validate() error {
	if c.Display.FPS < MinFPS || c.Display.FPS > MaxFPS {
		return fmt.Errorf("%w: display.fps %d outside [%d, %d]", ErrInvalid, c.Display.FPS, MinFPS, MaxFPS)
	}
	if _, err := core.ParseHex(c.Display.BackgroundColor); err != nil {
		return fmt.Errorf("%w: display.background_color: %v", ErrInvalid, err)
	}
	if _, err := core.ParseHex(c.Display.TextColor); err != nil {
		return fmt.Errorf("%w: display.text_color: %v", ErrInvalid, err)
	}
	if c.Display.ScaleWindow < 1 {
		return fmt.Errorf("%w: display.scale_window must be at least 1", ErrInvalid)
	}
	if c.Assets.Dir == "" {
		return fmt.Errorf("%w: assets.dir is empty", ErrInvalid)
	}
	if !c.Storage.Disabled && c.Storage.DBPath == "" {
		return fmt.Errorf("%w: storage.db_path is empty", ErrInvalid)
	}
	if c.Server.IdleTimeout < 0 || c.Server.MaxTimeout < 0 {
		return fmt.Errorf("%w: server timeouts cannot be negative", ErrInvalid)
	}
	if len(c.Player.Name) > MaxPlayerNameLen {
		return fmt.Errorf("%w: player.name longer than %d bytes", ErrInvalid, MaxPlayerNameLen)
	}
	return nil
}

// BackgroundRGB returns the flat fill color.
// Callers are expected to have validated the config.
func (c Config) BackgroundRGB() core.RGB {
	rgb, err := core.ParseHex(c.Display.BackgroundColor)
	if err != nil {
		return core.ColorBackground
	}
	return rgb
}

// TextRGB returns the text color.
func (c Config) TextRGB() core.RGB {
	rgb, err := core.ParseHex(c.Display.TextColor)
	if err != nil {
		return core.ColorText
	}
	return rgb
}

// TickInterval returns the frame interval for the configured FPS.
func (c Config) TickInterval() time.Duration {
	if c.Display.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Display.FPS)
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// FallbackPlayer is used when neither the config nor the OS names a player.
const FallbackPlayer = "player"

// PlayerName returns the configured player name, falling back to the
// current OS user. Names are shortened to fit the score store.
func (c Config) PlayerName() string {
	if name := storage.TruncatePlayer(c.Player.Name); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		if name := storage.TruncatePlayer(u.Username); name != "" {
			return name
		}
	}
	if name := storage.TruncatePlayer(os.Getenv("USER")); name != "" {
		return name
	}
	return FallbackPlayer
}
