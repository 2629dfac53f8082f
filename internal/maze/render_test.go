package maze

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gridmaze/internal/core"
)

func TestRequiredSize(t *testing.T) {
	e := newTestEngine(t, 20, 20)

	w, h := e.RequiredSize(RenderOptions{CellWidth: 2})
	if w != 42 || h != 25 {
		t.Errorf("RequiredSize = %dx%d, expected 42x25", w, h)
	}

	// Width below one is treated as one
	w, _ = e.RequiredSize(RenderOptions{})
	if w != 22 {
		t.Errorf("RequiredSize width with zero CellWidth = %d, expected 22", w)
	}
}

func TestRenderPlayerAndGoal(t *testing.T) {
	e := newTestEngine(t, 5, 4, Cell{X: 2, Y: 2})
	opts := RenderOptions{CellWidth: 2}
	w, h := e.RequiredSize(opts)
	screen := core.NewScreen(w, h)

	e.Render(screen, opts)

	// Board box starts at row hudHeight; cell (x,y) lives at column 1+x*2, row 3+y
	player := screen.GetCell(1+1*2, hudHeight+1+1)
	if player.Rune != glyphCell || player.Color != core.ColorGreen {
		t.Errorf("Player cell = %+v, expected green block", player)
	}
	goal := screen.GetCell(1+3*2+1, hudHeight+1+2)
	if goal.Rune != glyphCell || goal.Color != core.ColorRed {
		t.Errorf("Goal cell = %+v, expected red block", goal)
	}

	// Walls are hidden by default
	if strings.ContainsRune(screen.String(), glyphWall) {
		t.Error("Walls should not be drawn unless ShowWalls is set")
	}
}

func TestRenderShowWalls(t *testing.T) {
	e := newTestEngine(t, 5, 4, Cell{X: 2, Y: 2})
	opts := RenderOptions{CellWidth: 1, ShowWalls: true}
	w, h := e.RequiredSize(opts)
	screen := core.NewScreen(w+10, h)

	e.Render(screen, opts)

	if got := strings.Count(screen.String(), string(glyphWall)); got != 1 {
		t.Errorf("Expected one wall glyph, got %d:\n%s", got, screen.String())
	}
}

func TestRenderStatusLine(t *testing.T) {
	e := newTestEngine(t, 5, 3)
	opts := RenderOptions{CellWidth: 2}
	screen := core.NewScreen(80, 12)

	e.Render(screen, opts)
	if !strings.Contains(screen.Row(0), "Difficulty: Medium  Moves: 0") {
		t.Errorf("HUD = %q, expected difficulty and moves", screen.Row(0))
	}
	if !strings.Contains(screen.String(), MessagePlaying) {
		t.Errorf("Expected playing message:\n%s", screen.String())
	}

	e.Move(DirRight)
	e.Move(DirRight)
	e.Render(screen, opts)
	out := screen.String()
	if !strings.Contains(out, MessageWon) || !strings.Contains(out, "Solved!") {
		t.Errorf("Expected won message:\n%s", out)
	}
}

func TestRenderTooSmall(t *testing.T) {
	e := newTestEngine(t, 20, 20)
	screen := core.NewScreen(30, 10)

	e.Render(screen, RenderOptions{CellWidth: 2})
	out := screen.String()
	if !strings.Contains(out, "Window too small") || !strings.Contains(out, "Need 42x25") {
		t.Errorf("Expected too-small overlay:\n%s", out)
	}
}
