// Package maze holds the maze state engine: a fixed grid, a randomly sampled
// wall set, the player and goal cells and the completion flag.
//
// The engine is deliberately unsynchronised. Every front end owns its engines
// and applies one input at a time.
package maze

import (
	"errors"
	"fmt"
)

// ErrGridTooSmall is returned when a grid would have no columns or rows.
var ErrGridTooSmall = errors.New("maze: grid must have at least one column and one row")

// Cell addresses one grid position.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell offset by the direction's unit delta.
func (c Cell) Add(d Direction) Cell {
	delta := d.Delta()
	return Cell{X: c.X + delta.X, Y: c.Y + delta.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is the immutable board size.
type Grid struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// NewGrid validates and returns a cols×rows grid.
func NewGrid(cols, rows int) (Grid, error) {
	if cols < 1 || rows < 1 {
		return Grid{}, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, cols, rows)
	}
	return Grid{Cols: cols, Rows: rows}, nil
}

// GridFromSurface derives a grid from a drawing surface measured in pixels
// (or any unit) and a fixed cell size. Partial cells are dropped.
func GridFromSurface(width, height, cellSize int) (Grid, error) {
	if cellSize < 1 {
		return Grid{}, fmt.Errorf("maze: cell size must be positive, got %d", cellSize)
	}
	return NewGrid(width/cellSize, height/cellSize)
}

// Contains reports whether c lies inside [0,cols)×[0,rows).
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Cols && c.Y >= 0 && c.Y < g.Rows
}

// Start is the player's spawn cell.
func (g Grid) Start() Cell {
	return Cell{X: 1, Y: 1}
}

// Goal is the target cell, one step in from the bottom-right corner.
func (g Grid) Goal() Cell {
	return Cell{X: g.Cols - 2, Y: g.Rows - 2}
}

// isCorner reports whether c is one of the two absolute corners that
// generation never walls.
func (g Grid) isCorner(c Cell) bool {
	return (c.X == 0 && c.Y == 0) || (c.X == g.Cols-1 && c.Y == g.Rows-1)
}
