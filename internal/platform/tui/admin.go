package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hangman/internal/controller"
	"github.com/vovakirdan/tui-hangman/internal/core"
	"github.com/vovakirdan/tui-hangman/internal/dictionary"
)

// AdminKeyMap defines the key bindings for the word editor.
type AdminKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Add    key.Binding
	Remove key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k AdminKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Add, k.Remove, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k AdminKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Add, k.Remove, k.Back, k.Quit},
	}
}

// DefaultAdminKeyMap returns default key bindings.
func DefaultAdminKeyMap() AdminKeyMap {
	return AdminKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next difficulty"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev difficulty"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add word"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove word"),
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

// AdminModel edits the word bank one difficulty at a time.
// Every edit is persisted immediately.
type AdminModel struct {
	ctrl       *controller.Controller
	difficulty dictionary.Difficulty
	words      []dictionary.Word
	table      table.Model
	help       help.Model
	keys       AdminKeyMap
	width      int
	height     int

	adding bool
	input  textinput.Model

	status      string
	statusIsErr bool

	goingBack bool
	quitting  bool
}

// NewAdminModel creates a word editor over the controller's bank.
func NewAdminModel(ctrl *controller.Controller, width, height int) AdminModel {
	input := textinput.New()
	input.Placeholder = "new word"
	input.CharLimit = 48
	input.Width = 32

	m := AdminModel{
		ctrl:       ctrl,
		difficulty: dictionary.Easy,
		keys:       DefaultAdminKeyMap(),
		help:       help.New(),
		width:      width,
		height:     height,
		input:      input,
	}
	m.table = newTable([]table.Column{{Title: "Word", Width: 32}}, m.height-10)
	m.reload()
	return m
}

// reload refreshes the rows from the bank.
func (m *AdminModel) reload() {
	m.words = m.ctrl.Bank().WordsOf(m.difficulty)
	rows := make([]table.Row, len(m.words))
	for i, w := range m.words {
		rows[i] = table.Row{w.Raw()}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(core.Max(len(rows)-1, 0))
	}
}

// cycle moves to the next (delta 1) or previous (delta -1) difficulty.
func (m *AdminModel) cycle(delta int) {
	all := dictionary.Difficulties()
	i := (int(m.difficulty) + delta + len(all)) % len(all)
	m.difficulty = all[i]
	m.table.GotoTop()
	m.reload()
}

// Init initializes the model.
func (m AdminModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m AdminModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adding {
			return m.handleAddKey(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil

		case key.Matches(msg, m.keys.Add):
			m.adding = true
			m.status = ""
			m.input.SetValue("")
			return m, m.input.Focus()

		case key.Matches(msg, m.keys.Remove):
			m.removeSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(core.Max(m.height-10, 3))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleAddKey drives the add-word input.
func (m AdminModel) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil

	case "enter":
		raw := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		if raw == "" {
			return m, nil
		}
		if err := m.ctrl.AddWord(raw, m.difficulty); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.reload()
		m.table.GotoBottom()
		m.setStatus(fmt.Sprintf("Added %q to %s", raw, m.difficulty), false)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// removeSelected removes the word under the cursor.
func (m *AdminModel) removeSelected() {
	if len(m.words) == 0 {
		return
	}
	w := m.words[m.table.Cursor()]
	removed, err := m.ctrl.RemoveWord(w.Raw(), m.difficulty)
	switch {
	case err != nil:
		m.setStatus(err.Error(), true)
	case removed:
		m.setStatus(fmt.Sprintf("Removed %q from %s", w.Raw(), m.difficulty), false)
	}
	m.reload()
}

func (m *AdminModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

// View renders the editor.
func (m AdminModel) View() string {
	if m.goingBack || m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("WORD ADMIN", m.width)))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if len(m.words) == 0 {
		b.WriteString(emptyStyle.Render(fmt.Sprintf("No %s words.\nPress a to add one.", m.difficulty)))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.adding {
		b.WriteString(fmt.Sprintf(" Enter new word (Difficulty %s): ", m.difficulty))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else if m.status != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		if m.statusIsErr {
			style = errorStyle
		}
		b.WriteString(style.Render(" " + m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTabs renders one tab per difficulty.
func (m AdminModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	counts := m.ctrl.Bank().Counts()
	tabs := make([]string, 0, 3)
	for _, d := range dictionary.Difficulties() {
		label := fmt.Sprintf("%s (%d)", d, counts[d])
		if d == m.difficulty {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// IsQuitting returns true if user wants to quit entirely.
func (m AdminModel) IsQuitting() bool {
	return m.quitting
}

// RunAdmin runs the word editor. Returns true if the user wants to quit.
func RunAdmin(ctrl *controller.Controller, cfg core.RuntimeConfig) (quit bool, err error) {
	model := NewAdminModel(ctrl, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(AdminModel)
	if !ok {
		return true, nil
	}
	return m.IsQuitting(), nil
}
