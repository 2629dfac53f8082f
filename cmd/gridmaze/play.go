package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridmaze/internal/config"
	"github.com/vovakirdan/gridmaze/internal/core"
	"github.com/vovakirdan/gridmaze/internal/platform/tui"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagShowWalls  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a maze in this terminal",
	Long: `Start a maze in this terminal.

Controls:
  Arrows/WASD/hjkl  - Move
  1/2/3             - Easy / medium / hard (new maze)
  Tab               - Next difficulty (new maze)
  R                 - Restart (after reaching the exit)
  ?                 - Toggle full help
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty sets the wall density: easy 20%, medium 30%, hard 60%.

Examples:
  gridmaze play
  gridmaze play --difficulty easy
  gridmaze play --show-walls
  gridmaze play --config ./my-maze.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addMazeFlags(playCmd)
}

// addMazeFlags registers the config flags shared by every command that
// builds mazes.
func addMazeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom maze config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Starting difficulty: easy, medium, hard")
	cmd.Flags().BoolVar(&flagShowWalls, "show-walls", false, "Draw the walls")
}

// loadMazeConfig loads the config and applies the maze flags on top.
func loadMazeConfig(cmd *cobra.Command) (config.MazeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, flagDifficulty); err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("show-walls") {
		cfg.Render.ShowWalls = flagShowWalls
	}
	return cfg, nil
}

// openStore opens the runs database, warning and returning nil on failure so
// play continues without records.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, _ []string) error {
	mazeCfg, err := loadMazeConfig(cmd)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	var saver tui.RunSaver
	if store := openStore(); store != nil {
		defer store.Close()
		saver = store
	}

	if err := tui.Run(mazeCfg, saver, cfg, os.Getenv("USER")); err != nil {
		return fmt.Errorf("error running maze: %w", err)
	}
	return nil
}
