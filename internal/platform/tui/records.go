package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridmaze/internal/maze"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

const maxRecords = 100

// RunLister loads the best runs. *storage.Store implements it.
type RunLister interface {
	TopRuns(difficulty string, limit int) ([]storage.Run, error)
}

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev, k.Quit}}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next difficulty"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev difficulty"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// recordTabs are the difficulty filters; "" shows every difficulty.
var recordTabs = []string{"", string(maze.DifficultyEasy), string(maze.DifficultyMedium), string(maze.DifficultyHard)}

// RecordsModel is the Bubble Tea model for the best-runs table.
type RecordsModel struct {
	store    RunLister
	tab      int
	runs     []storage.Run
	loadErr  error
	table    table.Model
	help     help.Model
	keys     RecordsKeyMap
	width    int
	height   int
	quitting bool
}

// NewRecordsModel creates a records model opened on the given difficulty.
func NewRecordsModel(store RunLister, difficulty string, width, height int) RecordsModel {
	m := RecordsModel{
		store:  store,
		keys:   DefaultRecordsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, d := range recordTabs {
		if d == difficulty {
			m.tab = i
		}
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Level", Width: 8},
		{Title: "Moves", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for title, tabs and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *RecordsModel) loadRuns() {
	m.runs, m.loadErr = nil, nil
	if m.store != nil {
		m.runs, m.loadErr = m.store.TopRuns(recordTabs[m.tab], maxRecords)
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = RecordRow(i+1, r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// RecordRow formats one run as table cells.
func RecordRow(rank int, r storage.Run) []string {
	player := r.Player
	if player == "" {
		player = "-"
	}
	return []string{
		fmt.Sprintf("#%d", rank),
		player,
		r.Difficulty,
		fmt.Sprintf("%d", r.Moves),
		fmt.Sprintf("%.1fs", r.Duration.Seconds()),
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.tab = (m.tab + 1) % len(recordTabs)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.tab = (m.tab + len(recordTabs) - 1) % len(recordTabs)
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadRuns()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render("BEST RUNS")))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderTabs()))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m RecordsModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(recordTabs))
	for i, d := range recordTabs {
		name := d
		if name == "" {
			name = "all"
		}
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTableContent renders the table or an empty message.
func (m RecordsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nSolve a maze to set a record!")
	}
	return m.table.View()
}

// Difficulty returns the selected filter; empty means all difficulties.
func (m RecordsModel) Difficulty() string {
	return recordTabs[m.tab]
}

// RunRecords runs the records screen until the user quits.
func RunRecords(store RunLister, difficulty string, width, height int) error {
	p := tea.NewProgram(
		NewRecordsModel(store, difficulty, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
