package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridmaze/internal/config"
	"github.com/vovakirdan/gridmaze/internal/core"
	"github.com/vovakirdan/gridmaze/internal/maze"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

// RunSaver records completed runs. *storage.Store implements it.
type RunSaver interface {
	SaveRun(run storage.Run) (int64, error)
}

// Model is the Bubble Tea model for one maze session.
// There is no tick loop: the engine only changes on key presses, so every
// Update is one synchronous transition followed by a redraw.
type Model struct {
	engine   *maze.Engine
	screen   *core.Screen
	store    RunSaver
	config   core.RuntimeConfig
	opts     maze.RenderOptions
	keys     KeyMap
	help     help.Model
	player   string
	started  time.Time
	now      func() time.Time
	runSaved bool // Whether the current win has been recorded
	quitting bool
}

// NewModel creates a maze model from the maze config. A zero seed picks a
// time-based one. store may be nil.
func NewModel(mazeCfg config.MazeConfig, store RunSaver, cfg core.RuntimeConfig, player string) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	grid, err := mazeCfg.Grid()
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	m := Model{
		engine: maze.New(grid, mazeCfg.EngineOptions(cfg.Seed)),
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		opts:   mazeCfg.RenderOptions(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		player: player,
		store:  store,
		now:    time.Now,
	}
	m.help.Width = cfg.ScreenW
	m.started = m.now()
	return m, nil
}

// Init implements tea.Model. Nothing runs until the first key press.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	}

	wasCompleted := m.engine.Completed()
	res := m.engine.Apply(action)

	switch {
	case res.Won:
		m.saveRun()
	case startsNewRun(action, wasCompleted):
		m.started = m.now()
		m.runSaved = false
	}

	m.keys.Restart.SetEnabled(m.engine.Completed())
	return m, nil
}

// startsNewRun reports whether action reset the engine: any difficulty
// change, or a restart after the maze was solved.
func startsNewRun(action core.Action, wasCompleted bool) bool {
	switch action {
	case core.ActionEasy, core.ActionMedium, core.ActionHard, core.ActionCycle:
		return true
	case core.ActionRestart:
		return wasCompleted
	}
	return false
}

// saveRun records the current win once. Storage errors are ignored so play
// continues without a database.
func (m *Model) saveRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}

	grid := m.engine.Grid()
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(storage.Run{
		Player:     m.player,
		Difficulty: string(m.engine.Difficulty()),
		Moves:      m.engine.Moves(),
		Duration:   m.now().Sub(m.started),
		Cols:       grid.Cols,
		Rows:       grid.Rows,
		Seed:       m.engine.Seed(),
	})
}

// saveScreenshot saves the current board to ~/.gridmaze/screenshots.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".gridmaze", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	m.engine.Render(m.screen, m.opts)

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("maze_%s.txt", timestamp))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the board with the help bar underneath.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := helpStyle.Render(m.help.View(m.keys))
	boardH := max(0, m.config.ScreenH-lipgloss.Height(helpView))
	if m.screen.Width() != m.config.ScreenW || m.screen.Height() != boardH {
		m.screen.Resize(m.config.ScreenW, boardH)
	}

	m.engine.Render(m.screen, m.opts)
	return RenderScreen(m.screen) + "\n" + helpView
}

// Engine exposes the model's engine.
func (m Model) Engine() *maze.Engine {
	return m.engine
}

// Run starts the Bubble Tea program for a local game.
func Run(mazeCfg config.MazeConfig, store RunSaver, cfg core.RuntimeConfig, player string) error {
	model, err := NewModel(mazeCfg, store, cfg, player)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
