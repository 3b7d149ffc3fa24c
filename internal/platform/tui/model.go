package tui

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hangman/internal/controller"
	"github.com/vovakirdan/tui-hangman/internal/core"
	"github.com/vovakirdan/tui-hangman/internal/dictionary"
	"github.com/vovakirdan/tui-hangman/internal/round"
	"github.com/vovakirdan/tui-hangman/internal/saves"
)

// Game board layout.
const (
	boardW        = 64
	boardH        = 14
	infoX         = 16
	lettersPerRow = 13
)

// GameNext tells the caller what to show after the game board closes.
type GameNext int

const (
	GameNextQuit GameNext = iota
	GameNextMenu
	GameNextLoad
	GameNextAdmin
)

// pickChooser answers the controller with the difficulty the player
// selected for the next round.
type pickChooser struct {
	next dictionary.Difficulty
}

// ChooseDifficulty implements controller.DifficultyChooser.
func (p *pickChooser) ChooseDifficulty() (dictionary.Difficulty, error) {
	return p.next, nil
}

// GameModel is the Bubble Tea model for the game board.
type GameModel struct {
	ctrl      *controller.Controller
	chooser   *pickChooser
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	logger    *log.Logger

	// Save-as prompt
	savingAs bool
	input    textinput.Model

	flash      string
	flashColor core.Color
	flashID    int

	next     GameNext
	quitting bool
}

// NewGameModel creates the game board for a controller with an active session.
// Rounds started from the board use next until the player picks another difficulty.
func NewGameModel(ctrl *controller.Controller, next dictionary.Difficulty, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	chooser := &pickChooser{next: next}
	ctrl.SetChooser(chooser)

	input := textinput.New()
	input.Placeholder = "file name"
	input.CharLimit = 64
	input.Width = 32

	return GameModel{
		ctrl:      ctrl,
		chooser:   chooser,
		screen:    core.NewScreen(boardW, boardH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		logger:    logger,
		input:     input,
	}
}

// WithNotice opens the board with an error line, for failures that happened
// while the board was closed.
func (m GameModel) WithNotice(text string) GameModel {
	if text == "" {
		return m
	}
	m.flash = text
	m.flashColor = core.ColorBrightRed
	m.flashID++
	return m
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	if m.flash != "" {
		return flashClearCmd(m.flashID)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.savingAs {
			return m.handleSaveAsKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case flashClearMsg:
		if msg.id == m.flashID {
			m.flash = ""
		}
		return m, nil
	}

	if m.savingAs {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input on the board.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.keyMapper.MapKey(msg)

	switch in.Action {
	case core.ActionQuit:
		return m.leave(GameNextQuit)

	case core.ActionBack:
		return m.leave(GameNextMenu)

	case core.ActionLoad:
		return m.leave(GameNextLoad)

	case core.ActionAdmin:
		if err := m.ctrl.SaveCurrent(); err != nil {
			m.logger.Warn("save before admin failed", "player", m.ctrl.Player(), "error", err)
		}
		return m.leave(GameNextAdmin)

	case core.ActionPick:
		difficulties := dictionary.Difficulties()
		if in.Choice < 0 || in.Choice >= len(difficulties) {
			return m, nil
		}
		m.chooser.next = difficulties[in.Choice]
		return m.setFlash(fmt.Sprintf("Next round: %s", m.chooser.next), core.ColorCyan)

	case core.ActionReset:
		if err := m.ctrl.Reset(); err != nil {
			return m.setFlash(describeError(err), core.ColorBrightRed)
		}
		return m.setFlash(fmt.Sprintf("New %s word", m.chooser.next), core.ColorCyan)

	case core.ActionSave:
		if err := m.ctrl.SaveCurrent(); err != nil {
			return m.setFlash(describeError(err), core.ColorBrightRed)
		}
		return m.setFlash("Game saved successfully!", core.ColorGreen)

	case core.ActionSaveAs:
		m.savingAs = true
		m.input.SetValue("")
		return m, m.input.Focus()

	case core.ActionGuess:
		return m.guess(in.Letter)
	}

	return m, nil
}

// guess plays one letter and reports the end of a round.
func (m GameModel) guess(letter rune) (tea.Model, tea.Cmd) {
	if m.ctrl.HasGuessed(letter) {
		return m.setFlash(fmt.Sprintf("%c was already played", letter), core.ColorGray)
	}

	res, err := m.ctrl.ApplyGuess(letter)

	var text string
	color := core.ColorBrightRed
	switch res.Outcome {
	case controller.RoundWon:
		text = fmt.Sprintf("%s, You won!", m.ctrl.Player())
		color = core.ColorBrightGreen
	case controller.RoundLost:
		text = fmt.Sprintf("You lost! The word was: %s", res.Finished.Raw())
	}

	if res.Outcome != controller.StillPlaying && err == nil {
		if serr := m.ctrl.SaveCurrent(); serr != nil {
			m.logger.Warn("autosave failed", "player", m.ctrl.Player(), "error", serr)
		}
	}
	if err != nil {
		text = strings.TrimSpace(text + " " + describeError(err))
	}
	if text == "" {
		return m, nil
	}
	return m.setFlash(text, color)
}

// handleSaveAsKey drives the save-as prompt.
func (m GameModel) handleSaveAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.leave(GameNextQuit)

	case "esc":
		m.savingAs = false
		m.input.Blur()
		//nolint:errcheck // Canceled selection never fails
		m.ctrl.SaveAs(controller.Canceled())
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		m.savingAs = false
		m.input.Blur()
		path := saveAsPath(m.ctrl.Saves().Dir(), name)
		if err := m.ctrl.SaveAs(controller.Selected(path)); err != nil {
			return m.setFlash(describeError(err), core.ColorBrightRed)
		}
		return m.setFlash("Saved to "+filepath.Base(path), core.ColorGreen)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// saveAsPath places a bare name in the saves directory with the save suffix.
func saveAsPath(dir, name string) string {
	if !strings.HasSuffix(name, saves.Suffix) {
		name += saves.Suffix
	}
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(dir, name)
}

// setFlash shows a status message and schedules its removal.
func (m GameModel) setFlash(text string, c core.Color) (tea.Model, tea.Cmd) {
	m.flash = text
	m.flashColor = c
	m.flashID++
	return m, flashClearCmd(m.flashID)
}

// leave closes the board.
func (m GameModel) leave(next GameNext) (tea.Model, tea.Cmd) {
	m.next = next
	m.quitting = next == GameNextQuit
	return m, tea.Quit
}

// describeError turns controller errors into a short status line.
func describeError(err error) string {
	switch {
	case errors.Is(err, dictionary.ErrEmptyPartition):
		return "No words for that difficulty. Add some with ^w."
	case errors.Is(err, controller.ErrNoRound):
		return "No active round."
	default:
		return "Error: " + err.Error()
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	v := m.ctrl.View()
	m.screen.Clear()
	m.screen.DrawBox(core.NewRect(0, 0, boardW, boardH), core.ColorGray)
	m.screen.DrawText(2, 0, " HANGMAN ", core.ColorYellow)

	DrawGallows(m.screen, 3, 2, v.Wrong)
	m.drawInfo(v)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	if m.savingAs {
		b.WriteString(" Save as: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(" enter: save  esc: cancel"))
		return b.String()
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	return b.String()
}

// drawInfo draws the word, the letters and the status next to the gallows.
func (m GameModel) drawInfo(v controller.View) {
	s := m.screen
	s.DrawText(infoX, 2, "Player: "+v.Player, core.ColorWhite)
	if !v.HasRound {
		s.DrawText(infoX, 4, "No active round", core.ColorGray)
		return
	}

	s.DrawText(infoX, 3, "Difficulty: "+v.Difficulty.String(), core.ColorWhite)

	wordColor := core.ColorWhite
	switch v.Status {
	case round.Won:
		wordColor = core.ColorBrightGreen
	case round.Lost:
		wordColor = core.ColorBrightRed
	}
	s.DrawText(infoX, 5, v.Hidden, wordColor)

	s.DrawText(infoX, 7, fmt.Sprintf("Misses: %d/%d", v.Wrong, v.Max), core.ColorWhite)
	s.DrawText(infoX+16, 7, "Next: "+m.chooser.next.String(), core.ColorCyan)

	missed := make(map[rune]bool, len(v.Missed))
	for _, r := range v.Missed {
		missed[r] = true
	}
	played := make(map[rune]bool, len(v.Guessed))
	for _, r := range v.Guessed {
		played[r] = true
	}

	// Alphabet, colored by outcome
	for i := 0; i < 26; i++ {
		r := rune('A' + i)
		c := core.ColorGray
		switch {
		case missed[r]:
			c = core.ColorRed
		case played[r]:
			c = core.ColorGreen
		}
		s.SetColored(infoX+(i%lettersPerRow)*2, 9+i/lettersPerRow, r, c)
	}

	if m.flash != "" {
		s.DrawText(2, boardH-2, m.flash, m.flashColor)
	}
}

// Next returns what the caller should show after the board closes.
func (m GameModel) Next() GameNext {
	return m.next
}

// RunGame runs the game board until the player leaves it.
// A non-empty notice is shown as the first status line.
func RunGame(ctrl *controller.Controller, next dictionary.Difficulty, notice string, cfg core.RuntimeConfig, logger *log.Logger) (GameNext, error) {
	model := NewGameModel(ctrl, next, cfg, logger).WithNotice(notice)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return GameNextQuit, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return GameNextQuit, nil
	}
	return m.Next(), nil
}
