package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File names used by the search order.
const (
	userDir   = ".flappyvoid"
	userFile  = "config.yaml"
	localPath = "configs/flappyvoid.yaml"
)

// Source names where a loaded config came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// Load loads the configuration.
// Search order: customPath -> ~/.flappyvoid/config.yaml -> ./configs/flappyvoid.yaml -> embedded default.
// Files are layered over Default, so a file only needs the keys it changes.
// An explicit customPath that cannot be read or parsed is an error; the other
// locations are skipped when absent or broken.
func Load(customPath string) (Config, Source, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return Config{}, "", fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, SourceUser, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(localPath); ok {
		return cfg, SourceLocal, nil
	}

	// Use embedded default YAML
	if cfg, err := parse(defaultYAML); err == nil && cfg.Validate() == nil {
		return cfg, SourceEmbedded, nil
	}
	return Default(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
}

// tryFile reads an optional config file.
func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg, err := parse(data)
	if err != nil || cfg.Validate() != nil {
		return Config{}, false
	}
	return cfg, true
}

// parse decodes data over the hardcoded defaults.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns ~/.flappyvoid/config.yaml, or "" without a home dir.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, userDir, userFile)
}
