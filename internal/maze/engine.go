package maze

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Status is the two-valued game state.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
)

// Status messages shown under the board.
const (
	MessagePlaying = "Use the arrow keys to navigate the maze. Find the exit!"
	MessageWon     = "You won! Press restart to play again!"
)

// Options configures a new engine.
type Options struct {
	Seed       int64      // RNG seed for wall sampling
	Difficulty Difficulty // Initial difficulty; empty means DefaultDifficulty
	Densities  Densities  // Wall densities; nil means DefaultDensities
}

// MoveResult describes what a single input did to the engine.
type MoveResult struct {
	From    Cell `json:"from"`
	To      Cell `json:"to"`
	Moved   bool `json:"moved"`   // Player changed cell
	Blocked bool `json:"blocked"` // Candidate was off the grid or a wall
	Won     bool `json:"won"`     // This input set the completion flag
	Ignored bool `json:"ignored"` // Input arrived while the maze was already completed
}

// Engine is the maze state. It is not safe for concurrent use.
type Engine struct {
	grid       Grid
	seed       int64
	rng        *rand.Rand
	densities  Densities
	difficulty Difficulty
	walls      Walls
	player     Cell
	goal       Cell
	completed  bool
	moves      int
}

// New creates an engine on grid, generates the first wall set and places the
// player at the start cell.
func New(grid Grid, opts Options) *Engine {
	if opts.Densities == nil {
		opts.Densities = DefaultDensities()
	}
	if !opts.Difficulty.Valid() {
		opts.Difficulty = DefaultDifficulty
	}

	e := &Engine{
		grid:      grid,
		seed:      opts.Seed,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		densities: opts.Densities,
		goal:      grid.Goal(),
	}
	e.Generate(opts.Difficulty)
	e.Reset()
	return e
}

// Generate samples a new wall set for d and replaces the current one.
// Every cell except the two absolute corners becomes a wall independently
// with the difficulty's density. Player position and the completion flag are
// left alone; callers pair this with Reset when switching difficulty.
func (e *Engine) Generate(d Difficulty) Walls {
	if !d.Valid() {
		d = DefaultDifficulty
	}
	density := e.densities.Density(d)

	set := mapset.New[Cell]()
	for y := 0; y < e.grid.Rows; y++ {
		for x := 0; x < e.grid.Cols; x++ {
			c := Cell{X: x, Y: y}
			if e.grid.isCorner(c) {
				continue
			}
			if e.rng.Float64() < density {
				set.Put(c)
			}
		}
	}

	e.difficulty = d
	e.walls = Walls{set: set}
	return e.walls
}

// IsBlocked reports whether c is a wall.
func (e *Engine) IsBlocked(c Cell) bool {
	return e.walls.Has(c)
}

// TryMove computes the cell one step from current in direction d.
// It returns current and false when the step leaves the grid or hits a wall.
// The engine is not modified.
func (e *Engine) TryMove(current Cell, d Direction) (Cell, bool) {
	if !d.Valid() {
		return current, false
	}
	next := current.Add(d)
	if !e.grid.Contains(next) || e.IsBlocked(next) {
		return current, false
	}
	return next, true
}

// CheckGoal reports whether c is the goal cell.
func (e *Engine) CheckGoal(c Cell) bool {
	return c == e.goal
}

// Reset puts the player back on the start cell and clears the completion
// flag and move counter. Walls are kept.
func (e *Engine) Reset() {
	e.player = e.grid.Start()
	e.completed = false
	e.moves = 0
}

// Move handles one directional input: validate, apply, then check the goal.
// Inputs are ignored once the maze is completed.
func (e *Engine) Move(d Direction) MoveResult {
	res := MoveResult{From: e.player, To: e.player}
	if e.completed {
		res.Ignored = true
		return res
	}

	next, ok := e.TryMove(e.player, d)
	if ok {
		e.player = next
		e.moves++
		res.To = next
		res.Moved = true
	} else {
		res.Blocked = true
	}

	if e.CheckGoal(e.player) {
		e.completed = true
		res.Won = true
	}
	return res
}

// SetDifficulty regenerates the walls for d and resets the player.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.Generate(d)
	e.Reset()
}

// Restart resets the player and draws a fresh wall set at the current
// difficulty.
func (e *Engine) Restart() {
	e.Reset()
	e.Generate(e.difficulty)
}

// Grid returns the board size.
func (e *Engine) Grid() Grid { return e.grid }

// Player returns the player's cell.
func (e *Engine) Player() Cell { return e.player }

// Goal returns the goal cell.
func (e *Engine) Goal() Cell { return e.goal }

// Walls returns the current wall set.
func (e *Engine) Walls() Walls { return e.walls }

// Difficulty returns the difficulty of the current wall set.
func (e *Engine) Difficulty() Difficulty { return e.difficulty }

// Completed reports whether the goal was reached since the last reset.
func (e *Engine) Completed() bool { return e.completed }

// Moves returns the number of accepted moves since the last reset.
func (e *Engine) Moves() int { return e.moves }

// Seed returns the seed the engine was created with.
func (e *Engine) Seed() int64 { return e.seed }

// Status returns StatusWon once the goal is reached, StatusPlaying otherwise.
func (e *Engine) Status() Status {
	if e.completed {
		return StatusWon
	}
	return StatusPlaying
}

// Message returns the status line for the current state.
func (e *Engine) Message() string {
	if e.completed {
		return MessageWon
	}
	return MessagePlaying
}
