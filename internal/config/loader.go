package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

const mazeConfigFile = "maze.yaml"

// Load loads the maze configuration.
// Search order: customPath -> ~/.gridmaze/configs/maze.yaml -> ./configs/maze.yaml -> embedded default
//
// Files found on the search path are layered over DefaultMazeConfig, so a
// file may set only the keys it cares about. An explicit customPath must
// exist, parse and validate; files found implicitly are skipped when broken.
func Load(customPath string) (MazeConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultMazeConfig(), err
		}
		if err := cfg.Validate(); err != nil {
			return DefaultMazeConfig(), fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(mazeConfigFile), filepath.Join("configs", mazeConfigFile)} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultMazeConfig()
	if err := yaml.Unmarshal(defaultMazeYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultMazeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func loadFile(path string) (MazeConfig, error) {
	cfg := DefaultMazeConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridmaze", "configs", filename)
}

// ApplyPreset sets the starting difficulty from a CLI flag value.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *MazeConfig, preset string) error {
	if preset == "" {
		return nil
	}
	d, err := maze.ParseDifficulty(preset)
	if err != nil {
		return err
	}
	cfg.Difficulty.Default = string(d)
	return nil
}
