package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the built-in maze configuration: a 400x400
// surface with 20-unit cells, medium difficulty and hidden walls.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Surface: SurfaceConfig{
			Width:    400,
			Height:   400,
			CellSize: 20,
		},
		Difficulty: DifficultyConfig{
			Default: "medium",
			Densities: map[string]float64{
				"easy":   0.2,
				"medium": 0.3,
				"hard":   0.6,
			},
		},
		Render: RenderConfig{
			ShowWalls: false,
			CellWidth: 2,
		},
	}
}
