package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultMazeConfigValid(t *testing.T) {
	cfg := DefaultMazeConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}

	grid, err := cfg.Grid()
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}
	if grid.Cols != 20 || grid.Rows != 20 {
		t.Errorf("Default grid = %dx%d, expected 20x20", grid.Cols, grid.Rows)
	}
	if cfg.DefaultDifficulty() != maze.DifficultyMedium {
		t.Errorf("Default difficulty = %q, expected medium", cfg.DefaultDifficulty())
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Only meaningful when no user or local override exists
	if cfg.Surface != DefaultMazeConfig().Surface {
		t.Skip("user or local config present")
	}
	if cfg.Render != DefaultMazeConfig().Render {
		t.Errorf("Render = %+v, expected %+v", cfg.Render, DefaultMazeConfig().Render)
	}
	if got := cfg.Densities()[maze.DifficultyHard]; got != 0.6 {
		t.Errorf("Hard density = %v, expected 0.6", got)
	}
}

func TestLoadCustomPartial(t *testing.T) {
	path := writeConfig(t, `
surface:
  width: 100
difficulty:
  default: hard
  densities:
    hard: 0.45
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	grid, _ := cfg.Grid()
	if grid.Cols != 5 || grid.Rows != 20 {
		t.Errorf("Grid = %dx%d, expected 5x20", grid.Cols, grid.Rows)
	}
	if cfg.DefaultDifficulty() != maze.DifficultyHard {
		t.Errorf("Default difficulty = %q, expected hard", cfg.DefaultDifficulty())
	}

	ds := cfg.Densities()
	if ds[maze.DifficultyHard] != 0.45 {
		t.Errorf("Hard density = %v, expected 0.45", ds[maze.DifficultyHard])
	}
	if ds[maze.DifficultyEasy] != 0.2 {
		t.Errorf("Easy density = %v, expected default 0.2", ds[maze.DifficultyEasy])
	}
	if cfg.Render.CellWidth != 2 {
		t.Errorf("Unset cell_width = %d, expected default 2", cfg.Render.CellWidth)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "surface: [1, 2"},
		{"empty grid", "surface: {width: 10, height: 400, cell_size: 20}"},
		{"zero cell size", "surface: {cell_size: 0}"},
		{"density too high", "difficulty: {densities: {hard: 1.5}}"},
		{"negative density", "difficulty: {densities: {easy: -0.1}}"},
		{"unknown density key", "difficulty: {densities: {insane: 0.9}}"},
		{"unknown default", "difficulty: {default: nightmare}"},
		{"cell width", "render: {cell_width: 0}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Errorf("Load(%q) should fail", tc.body)
			}
		})
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	cfg := DefaultMazeConfig()
	cfg.Render.CellWidth = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate error = %v, expected ErrInvalidConfig", err)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultMazeConfig()

	if err := ApplyPreset(&cfg, ""); err != nil || cfg.Difficulty.Default != "medium" {
		t.Errorf("Empty preset changed config: %q, %v", cfg.Difficulty.Default, err)
	}
	if err := ApplyPreset(&cfg, "EASY"); err != nil || cfg.Difficulty.Default != "easy" {
		t.Errorf("ApplyPreset(EASY) = %q, %v", cfg.Difficulty.Default, err)
	}
	if err := ApplyPreset(&cfg, "normal"); !errors.Is(err, maze.ErrUnknownDifficulty) {
		t.Errorf("Expected ErrUnknownDifficulty, got %v", err)
	}
	if cfg.Difficulty.Default != "easy" {
		t.Error("Failed preset must not change the config")
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultMazeConfig()
	cfg.Difficulty.Default = "hard"
	cfg.Render.ShowWalls = true

	opts := cfg.EngineOptions(42)
	if opts.Seed != 42 || opts.Difficulty != maze.DifficultyHard {
		t.Errorf("EngineOptions = %+v", opts)
	}
	if ro := cfg.RenderOptions(); !ro.ShowWalls || ro.CellWidth != 2 {
		t.Errorf("RenderOptions = %+v", ro)
	}
}
