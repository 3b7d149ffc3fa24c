package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hangman/internal/core"
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuNewGame
	MenuLoad
	MenuAdmin
	MenuStats
	MenuQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// mainMenuItems lists the main menu entries in display order.
var mainMenuItems = []MenuItem{
	{Choice: MenuNewGame, Title: "New Game"},
	{Choice: MenuLoad, Title: "Load save"},
	{Choice: MenuAdmin, Title: "Word admin"},
	{Choice: MenuStats, Title: "Statistics"},
	{Choice: MenuQuit, Title: "Quit"},
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	notice    string
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model. A non-empty notice is shown under the title.
func NewMenuModel(cfg core.RuntimeConfig, notice string) MenuModel {
	return MenuModel{
		items:     mainMenuItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		notice:    notice,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  H A N G M A N  ", m.width)))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(errorStyle.Render(centerText(m.notice, m.width)))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(helpStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the selected entry, MenuQuit when the menu was left.
func (m MenuModel) Choice() MenuChoice {
	if m.selected == nil {
		return MenuQuit
	}
	return m.selected.Choice
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, notice string) (MenuResult, error) {
	model := NewMenuModel(cfg, notice)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Choice: MenuQuit, Config: cfg}, nil
	}
	return MenuResult{Choice: m.Choice(), Config: m.Config()}, nil
}
