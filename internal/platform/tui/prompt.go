package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hangman/internal/core"
)

// PromptModel asks for a single line of text, such as the player name.
type PromptModel struct {
	title    string
	required string
	input    textinput.Model
	width    int
	errMsg   string
	done     bool
	canceled bool
}

// NewPromptModel creates a prompt. required is shown when the player
// submits an empty value.
func NewPromptModel(title, placeholder, required string, width int) PromptModel {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 32
	input.Width = 32
	input.Focus()

	return PromptModel{
		title:    title,
		required: required,
		input:    input,
		width:    width,
	}
}

// Init starts the cursor blink.
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			if m.Value() == "" {
				m.errMsg = m.required
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m PromptModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(m.title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.input.View())))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(centerText(m.errMsg, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText("Enter: OK  |  Esc: Cancel", m.width)))
	b.WriteString("\n")
	return b.String()
}

// Value returns the trimmed input.
func (m PromptModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Submitted reports whether the player confirmed a value.
func (m PromptModel) Submitted() bool {
	return m.done
}

// RunPrompt runs a prompt and returns the entered value, and false on cancel.
func RunPrompt(title, placeholder, required string, cfg core.RuntimeConfig) (string, bool, error) {
	model := NewPromptModel(title, placeholder, required, cfg.ScreenW)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(PromptModel)
	if !ok || !m.Submitted() {
		return "", false, nil
	}
	return m.Value(), true, nil
}
