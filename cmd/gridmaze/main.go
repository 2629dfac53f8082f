// gridmaze is a terminal maze game: find the exit of a randomly walled grid.
//
// Usage:
//
//	gridmaze play               - Play in this terminal
//	gridmaze serve              - Start SSH server for remote play
//	gridmaze web                - Start the HTTP/WebSocket API
//	gridmaze records [level]    - Show the best runs
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible mazes
//	--db <path>          - Set database path (default: ~/.gridmaze/runs.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridmaze",
	Short: "Grid Maze - find the exit in your terminal",
	Long: `Grid Maze drops you on a grid full of invisible walls. Walk from the
top-left to the exit near the bottom-right corner using the arrow keys.

Walls are sampled at random, so some mazes have no way through:
switch difficulty or restart to roll a new one.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start the HTTP/WebSocket API
  records  - View the best runs

Examples:
  gridmaze play
  gridmaze play --difficulty hard --show-walls
  gridmaze serve --ssh :2222
  gridmaze web --http :8080
  gridmaze records easy`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gridmaze/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(recordsCmd)
}

// newLogger creates a stderr logger with the given prefix at --log-level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}
