package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hangman/internal/core"
	"github.com/vovakirdan/tui-hangman/internal/storage"
)

// Stats board layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show player list sidebar
	sidebarWidth       = 20 // Width of player list sidebar
	maxRounds          = 100
)

// StatsKeyMap defines the key bindings for the stats board.
type StatsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPlayer key.Binding
	PrevPlayer key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPlayer, k.PrevPlayer, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPlayer, k.PrevPlayer},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPlayer: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next player"),
		),
		PrevPlayer: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev player"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the round history screen.
type StatsModel struct {
	store       *storage.Store
	players     []string
	stats       map[string]*storage.PlayerStats
	cursor      int
	rounds      []storage.RoundEntry
	loadErr     error
	table       table.Model
	help        help.Model
	keys        StatsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewStatsModel creates a stats board. A nil store shows that history is off.
// The board opens on player when they have history.
func NewStatsModel(store *storage.Store, player string, width, height int) StatsModel {
	m := StatsModel{
		store:       store,
		keys:        DefaultStatsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()

	if store == nil {
		return m
	}

	m.stats, m.loadErr = store.AllPlayersStats()
	for name := range m.stats {
		m.players = append(m.players, name)
	}
	sort.Strings(m.players)
	for i, name := range m.players {
		if name == player {
			m.cursor = i
		}
	}
	if len(m.players) > 0 {
		m.loadRounds()
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *StatsModel) createTable() table.Model {
	return newTable([]table.Column{
		{Title: "Word", Width: 16},
		{Title: "Level", Width: 7},
		{Title: "Result", Width: 6},
		{Title: "Misses", Width: 6},
		{Title: "Date", Width: 12},
	}, m.height-10)
}

// loadRounds loads the history of the selected player.
func (m *StatsModel) loadRounds() {
	rounds, err := m.store.RecentRounds(m.players[m.cursor], maxRounds)
	if err != nil {
		m.loadErr = err
		rounds = nil
	}
	m.rounds = rounds
	m.updateTableRows()
}

// updateTableRows updates the table with the current rounds.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		result := "lost"
		if r.Won {
			result = "won"
		}
		rows[i] = table.Row{
			r.Word,
			r.Difficulty.String(),
			result,
			fmt.Sprintf("%d", r.Wrong),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats board.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPlayer):
			if len(m.players) > 0 {
				m.cursor = (m.cursor + 1) % len(m.players)
				m.loadRounds()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPlayer):
			if len(m.players) > 0 {
				m.cursor = (m.cursor - 1 + len(m.players)) % len(m.players)
				m.loadRounds()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats board.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "STATISTICS"
	if len(m.players) > 0 {
		title = fmt.Sprintf("STATISTICS - %s", m.players[m.cursor])
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	switch {
	case m.store == nil:
		b.WriteString(emptyStyle.Render("Round history is disabled.\nSet history: true in the config."))
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("Cannot read history: " + m.loadErr.Error()))
	case len(m.players) == 0:
		b.WriteString(emptyStyle.Render("No rounds recorded yet.\nFinish a round to see it here!"))
	case m.showSidebar:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", m.renderMain()))
	default:
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.players[m.cursor]), m.width))
		b.WriteString("\n\n")
		b.WriteString(m.renderMain())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSidebar renders the player list.
func (m StatsModel) renderSidebar() string {
	sidebarStyle := boxStyle.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Players\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range m.players {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderMain renders the summary line and the round table.
func (m StatsModel) renderMain() string {
	s := m.stats[m.players[m.cursor]]
	summary := fmt.Sprintf("Rounds: %d  Won: %d  Lost: %d  Win rate: %.0f%%  Avg misses: %.1f",
		s.Rounds, s.Wins, s.Losses, s.WinRate()*100, s.AvgWrong)
	return boxStyle.Render(summary + "\n\n" + m.table.View())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// RunStats runs the stats board.
// Returns true if user wants to go back to menu, false if quitting.
func RunStats(store *storage.Store, player string, cfg core.RuntimeConfig) (goBack bool, err error) {
	model := NewStatsModel(store, player, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
