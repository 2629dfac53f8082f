package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridmaze/internal/maze"
	"github.com/vovakirdan/gridmaze/internal/platform/tui"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
	flagClear bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [difficulty]",
	Short: "Show the best runs",
	Long: `Display the best runs, fewest moves first, optionally for one difficulty.

In a terminal this opens an interactive table; use --plain for text output.

Examples:
  gridmaze records
  gridmaze records hard --limit 5
  gridmaze records --plain
  gridmaze records easy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	recordsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the selected runs instead of showing them")
}

func runRecords(_ *cobra.Command, args []string) error {
	difficulty := ""
	if len(args) == 1 {
		d, err := maze.ParseDifficulty(args[0])
		if err != nil {
			return err
		}
		difficulty = string(d)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening runs database: %w", err)
	}
	defer store.Close()

	if flagClear {
		n, err := store.ClearRuns(difficulty)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d runs\n", n)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		return tui.RunRecords(store, difficulty, width, height)
	}

	return printRecords(store, difficulty)
}

func printRecords(store *storage.Store, difficulty string) error {
	runs, err := store.TopRuns(difficulty, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	title := "all difficulties"
	if difficulty != "" {
		title = difficulty
	}
	fmt.Printf("Best Runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gridmaze play' and reach the exit to set the first record!")
		return nil
	}

	fmt.Printf("  %-5s  %-12s  %-7s  %-6s  %-8s  %s\n", "Rank", "Player", "Level", "Moves", "Time", "Date")
	fmt.Printf("  %-5s  %-12s  %-7s  %-6s  %-8s  %s\n", "----", "------", "-----", "-----", "----", "----")
	for i, r := range runs {
		row := tui.RecordRow(i+1, r)
		fmt.Printf("  %-5s  %-12s  %-7s  %-6s  %-8s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5])
	}

	stats, err := store.DifficultyStats()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	fmt.Println()
	for _, d := range maze.Difficulties() {
		st, ok := stats[string(d)]
		if !ok || (difficulty != "" && difficulty != string(d)) {
			continue
		}
		fmt.Printf("%-7s wins: %-4d best: %-4d avg: %.1f moves\n", d, st.Wins, st.BestMoves, st.AvgMoves)
	}

	if difficulty != "" {
		best, err := store.BestRun(difficulty)
		if err == nil && best != nil {
			fmt.Printf("\nRecord: %d moves in %.1fs", best.Moves, best.Duration.Seconds())
			if best.Player != "" {
				fmt.Printf(" by %s", best.Player)
			}
			fmt.Println()
		}
	}
	return nil
}
