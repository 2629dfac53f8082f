package maze

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridmaze/internal/core"
)

const (
	hudHeight    = 2 // Title line plus separator
	statusHeight = 1
	borderSize   = 2 // One cell of box border on each side

	glyphCell = '█'
	glyphWall = '▓'
)

// RenderOptions controls how the board is drawn.
type RenderOptions struct {
	// ShowWalls draws the wall set. Off by default: the player only sees the
	// walls by bumping into them.
	ShowWalls bool

	// CellWidth is how many screen columns one grid cell occupies.
	// Terminal cells are roughly twice as tall as wide, so 2 keeps cells square.
	CellWidth int
}

func (o RenderOptions) cellWidth() int {
	return max(1, o.CellWidth)
}

// RequiredSize returns the smallest screen that can hold the HUD, the
// bordered board and the status line.
func (e *Engine) RequiredSize(opts RenderOptions) (w, h int) {
	w = e.grid.Cols*opts.cellWidth() + borderSize
	h = hudHeight + e.grid.Rows + borderSize + statusHeight
	return w, h
}

// Render draws the full game view into dst.
func (e *Engine) Render(dst *core.Screen, opts RenderOptions) {
	dst.Clear()
	e.renderHUD(dst)

	needW, needH := e.RequiredSize(opts)
	if dst.Width() < needW || dst.Height() < needH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	cw := opts.cellWidth()
	board := core.NewRect(0, hudHeight, dst.Width(), e.grid.Rows+borderSize).
		Centered(e.grid.Cols*cw+borderSize, e.grid.Rows+borderSize)
	dst.DrawBox(board, core.ColorGray)

	paint := func(c Cell, r rune, color core.Color) {
		x := board.X + 1 + c.X*cw
		y := board.Y + 1 + c.Y
		for i := 0; i < cw; i++ {
			dst.SetColored(x+i, y, r, color)
		}
	}

	if opts.ShowWalls {
		e.walls.set.Each(func(c Cell) {
			paint(c, glyphWall, core.ColorGray)
		})
	}
	if e.grid.Contains(e.goal) {
		paint(e.goal, glyphCell, core.ColorRed)
	}
	paint(e.player, glyphCell, core.ColorGreen)

	statusColor := core.ColorDefault
	if e.completed {
		statusColor = core.ColorBrightGreen
	}
	dst.DrawTextCentered(board.Bottom(), e.Message(), statusColor)
}

func (e *Engine) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" MAZE  Difficulty: %s  Moves: %d", titleCase(string(e.difficulty)), e.moves)
	if e.completed {
		hud += "  Solved!"
	}
	dst.DrawTextColored(0, 0, hud, core.ColorYellow)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderOverlay draws a boxed two-line message in the middle of dst.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len(line1), len(line2)) + 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(w, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorDefault)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
