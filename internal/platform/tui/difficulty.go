package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hangman/internal/core"
	"github.com/vovakirdan/tui-hangman/internal/dictionary"
)

// DifficultyModel lets the player choose the difficulty of the first round.
type DifficultyModel struct {
	options   []dictionary.Difficulty
	counts    map[dictionary.Difficulty]int
	cursor    int
	width     int
	keyMapper *KeyMapper
	chosen    bool
	canceled  bool
}

// NewDifficultyModel creates a selector starting on initial.
// counts is shown next to each difficulty; nil hides it.
func NewDifficultyModel(counts map[dictionary.Difficulty]int, initial dictionary.Difficulty, width int) DifficultyModel {
	m := DifficultyModel{
		options:   dictionary.Difficulties(),
		counts:    counts,
		width:     width,
		keyMapper: NewKeyMapper(),
	}
	for i, d := range m.options {
		if d == initial {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Digits select directly
	if in := m.keyMapper.MapKey(msg); in.Is(core.ActionPick) && in.Choice < len(m.options) {
		m.cursor = in.Choice
		m.chosen = true
		return m, tea.Quit
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.canceled = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.chosen = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the selector.
func (m DifficultyModel) View() string {
	if m.chosen || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("Choose difficulty level:", m.width)))
	b.WriteString("\n\n")

	for i, d := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%d. %s", cursor, i+1, d)
		if m.counts != nil {
			if n := m.counts[d]; n == 0 {
				line += " (empty)"
			} else {
				line += fmt.Sprintf(" (%d words)", n)
			}
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText("1/2/3 or Enter: Select  |  Esc: Back", m.width)))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen difficulty, and false when the player backed out.
func (m DifficultyModel) Selected() (dictionary.Difficulty, bool) {
	if !m.chosen {
		return dictionary.Easy, false
	}
	return m.options[m.cursor], true
}

// RunDifficultySelect runs the difficulty selector.
func RunDifficultySelect(counts map[dictionary.Difficulty]int, initial dictionary.Difficulty, cfg core.RuntimeConfig) (dictionary.Difficulty, bool, error) {
	model := NewDifficultyModel(counts, initial, cfg.ScreenW)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return initial, false, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return initial, false, nil
	}
	d, chosen := m.Selected()
	return d, chosen, nil
}
