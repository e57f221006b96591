package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappyvoid.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration.
// It matches defaults/flappyvoid.yaml and is used if the embedded file
// cannot be parsed.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			FPS:             60,
			BackgroundColor: "#f5f5f5",
			TextColor:       "#141414",
			ScaleWindow:     1,
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
		Storage: StorageConfig{
			DBPath: "~/.flappyvoid/scores.db",
		},
		Server: ServerConfig{
			Address:     ":23234",
			HostKeyPath: ".ssh/flappyvoid_ed25519",
			IdleTimeout: 10 * time.Minute,
			MaxTimeout:  time.Hour,
		},
		Player: PlayerConfig{
			Name: "",
		},
	}
}
