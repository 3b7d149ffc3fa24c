package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hangman/internal/controller"
	"github.com/vovakirdan/tui-hangman/internal/core"
	"github.com/vovakirdan/tui-hangman/internal/saves"
)

// ListKeyMap defines the key bindings shared by the table screens.
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultListKeyMap returns default key bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
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

// newTable creates a table with the shared styling.
func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(height, 3)),
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

// SavePickerModel lists the save files and returns the chosen one.
type SavePickerModel struct {
	entries  []saves.Entry
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ListKeyMap
	width    int
	height   int
	done     bool
	quitting bool
	choice   controller.FileSelection
}

// NewSavePickerModel creates a picker over the saves in store.
func NewSavePickerModel(store *saves.Store, width, height int) SavePickerModel {
	m := SavePickerModel{
		keys:   DefaultListKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
		choice: controller.Canceled(),
	}
	m.entries, m.loadErr = store.Entries()
	m.table = m.createTable()
	return m
}

func (m *SavePickerModel) createTable() table.Model {
	t := newTable([]table.Column{
		{Title: "Player", Width: 16},
		{Title: "File", Width: 28},
		{Title: "Modified", Width: 14},
	}, m.height-8)

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		modified := ""
		if !e.Modified.IsZero() {
			modified = e.Modified.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{e.Player, filepath.Base(e.Path), modified}
	}
	t.SetRows(rows)
	return t
}

// Init initializes the model.
func (m SavePickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SavePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.entries) == 0 {
				return m, nil
			}
			m.choice = controller.Selected(m.entries[m.table.Cursor()].Path)
			m.done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m SavePickerModel) View() string {
	if m.done || m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("LOAD SAVE", m.width)))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("Failed to load the game list: " + m.loadErr.Error()))
	case len(m.entries) == 0:
		b.WriteString(emptyStyle.Render("No saves yet.\nStart a new game to create one."))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Choice returns the picked save, Canceled when the player backed out.
func (m SavePickerModel) Choice() controller.FileSelection {
	return m.choice
}

// IsQuitting returns true if user wants to quit entirely.
func (m SavePickerModel) IsQuitting() bool {
	return m.quitting
}

// RunSavePicker runs the save picker.
func RunSavePicker(store *saves.Store, cfg core.RuntimeConfig) (sel controller.FileSelection, quit bool, err error) {
	model := NewSavePickerModel(store, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return controller.Canceled(), false, err
	}

	m, ok := finalModel.(SavePickerModel)
	if !ok {
		return controller.Canceled(), true, nil
	}
	return m.Choice(), m.IsQuitting(), nil
}
