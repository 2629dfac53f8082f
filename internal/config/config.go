// Package config provides YAML-based maze configuration loading with
// embedded defaults and validation.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid maze config")

// MazeConfig contains all configuration for the maze game.
type MazeConfig struct {
	Surface    SurfaceConfig    `yaml:"surface"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Render     RenderConfig     `yaml:"render"`
}

// SurfaceConfig is the drawing surface the grid is cut from.
type SurfaceConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// DifficultyConfig selects the starting difficulty and the wall densities.
type DifficultyConfig struct {
	Default   string             `yaml:"default"`
	Densities map[string]float64 `yaml:"densities"`
}

// RenderConfig controls terminal drawing.
type RenderConfig struct {
	ShowWalls bool `yaml:"show_walls"`
	CellWidth int  `yaml:"cell_width"` // Screen columns per grid cell
}

// Validate checks that the config yields a playable engine.
func (c MazeConfig) Validate() error {
	if _, err := c.Grid(); err != nil {
		return fmt.Errorf("%w: surface %dx%d with cell size %d: %v",
			ErrInvalidConfig, c.Surface.Width, c.Surface.Height, c.Surface.CellSize, err)
	}
	if _, err := maze.ParseDifficulty(c.Difficulty.Default); err != nil {
		return fmt.Errorf("%w: default difficulty: %v", ErrInvalidConfig, err)
	}
	for name, v := range c.Difficulty.Densities {
		if _, err := maze.ParseDifficulty(name); err != nil {
			return fmt.Errorf("%w: densities: %v", ErrInvalidConfig, err)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: density for %s must be within [0,1], got %v", ErrInvalidConfig, name, v)
		}
	}
	if c.Render.CellWidth < 1 {
		return fmt.Errorf("%w: cell_width must be at least 1, got %d", ErrInvalidConfig, c.Render.CellWidth)
	}
	return nil
}

// Grid derives the maze grid from the surface.
func (c MazeConfig) Grid() (maze.Grid, error) {
	return maze.GridFromSurface(c.Surface.Width, c.Surface.Height, c.Surface.CellSize)
}

// DefaultDifficulty returns the configured starting difficulty, falling back
// to medium for unknown names.
func (c MazeConfig) DefaultDifficulty() maze.Difficulty {
	d, err := maze.ParseDifficulty(c.Difficulty.Default)
	if err != nil {
		return maze.DefaultDifficulty
	}
	return d
}

// Densities converts the YAML density table to the engine's type.
// Unset difficulties keep their built-in density.
func (c MazeConfig) Densities() maze.Densities {
	ds := maze.DefaultDensities()
	for name, v := range c.Difficulty.Densities {
		if d, err := maze.ParseDifficulty(name); err == nil {
			ds[d] = v
		}
	}
	return ds
}

// RenderOptions returns the engine render options.
func (c MazeConfig) RenderOptions() maze.RenderOptions {
	return maze.RenderOptions{
		ShowWalls: c.Render.ShowWalls,
		CellWidth: c.Render.CellWidth,
	}
}

// EngineOptions bundles the engine options for a given seed.
func (c MazeConfig) EngineOptions(seed int64) maze.Options {
	return maze.Options{
		Seed:       seed,
		Difficulty: c.DefaultDifficulty(),
		Densities:  c.Densities(),
	}
}
