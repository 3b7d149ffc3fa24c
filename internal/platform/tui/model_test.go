package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hangman/internal/controller"
	"github.com/vovakirdan/tui-hangman/internal/core"
	"github.com/vovakirdan/tui-hangman/internal/dictionary"
	"github.com/vovakirdan/tui-hangman/internal/saves"
)

func newTestController(t *testing.T, bankContent, player string) *controller.Controller {
	t.Helper()
	dir := t.TempDir()

	bankPath := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(bankPath, []byte(bankContent), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	bank, err := dictionary.Load(bankPath)
	if err != nil {
		t.Fatalf("dictionary.Load failed: %v", err)
	}

	ctrl := controller.New(bank, saves.NewStore(filepath.Join(dir, "saves"), nil), controller.FixedDifficulty(dictionary.Easy))
	if player != "" {
		if err := ctrl.NewGame(player); err != nil {
			t.Fatalf("NewGame failed: %v", err)
		}
	}
	return ctrl
}

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameModelGuessAndWin(t *testing.T) {
	ctrl := newTestController(t, "Easy|CAT\n", "alice")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

	updated := send(t, m, runeKey('c'), runeKey('x'))
	gm := updated.(GameModel)
	if v := ctrl.View(); v.Hidden != "C _ _" || v.Wrong != 1 {
		t.Errorf("View() = %q/%d, expected \"C _ _\"/1", v.Hidden, v.Wrong)
	}

	updated = send(t, gm, runeKey('a'), runeKey('t'))
	gm = updated.(GameModel)
	if !strings.Contains(gm.flash, "alice, You won!") {
		t.Errorf("flash = %q, expected the win message", gm.flash)
	}
	if ctrl.View().Hidden != "_ _ _" {
		t.Error("a new round should start after the win")
	}
}

func TestGameModelLossMessage(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "bob")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

	var updated tea.Model = m
	for _, r := range "qxzjvk" {
		updated = send(t, updated, runeKey(r))
	}
	gm := updated.(GameModel)
	if !strings.Contains(gm.flash, "You lost! The word was: DOG") {
		t.Errorf("flash = %q, expected the loss message", gm.flash)
	}
}

func TestGameModelRepeatedLetterIgnored(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "carol")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

	updated := send(t, m, runeKey('x'), runeKey('x'), runeKey('X'))
	if ctrl.View().Wrong != 1 {
		t.Errorf("Wrong = %d, expected repeated presses to be ignored", ctrl.View().Wrong)
	}
	if gm := updated.(GameModel); !strings.Contains(gm.flash, "already played") {
		t.Errorf("flash = %q, expected a repeat notice", gm.flash)
	}
}

func TestGameModelPickNextDifficulty(t *testing.T) {
	ctrl := newTestController(t, "Easy|A\nMedium|B\n", "dan")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

	send(t, m, runeKey('2'), runeKey('a'))

	v := ctrl.View()
	if v.Word != "B" || v.Difficulty != dictionary.Medium {
		t.Errorf("next round = %q/%v, expected B/Medium", v.Word, v.Difficulty)
	}
}

func TestGameModelResetEmptyPartition(t *testing.T) {
	ctrl := newTestController(t, "Easy|CAT\n", "erin")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

	updated := send(t, m, runeKey('c'), runeKey('3'), tea.KeyMsg{Type: tea.KeyCtrlN})
	gm := updated.(GameModel)
	if !strings.Contains(gm.flash, "No words") {
		t.Errorf("flash = %q, expected the empty difficulty notice", gm.flash)
	}
	if ctrl.View().Hidden != "C _ _" {
		t.Error("the current round should be kept")
	}
}

func TestGameModelSave(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "fay")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

	send(t, m, runeKey('o'), tea.KeyMsg{Type: tea.KeyCtrlS})

	rec, err := ctrl.Saves().Load(ctrl.View().SavePath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rec.Word.Raw() != "DOG" || len(rec.Guessed) != 1 {
		t.Errorf("saved record = %+v, expected DOG with one guess", rec)
	}
}

func TestGameModelSaveAs(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "gus")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

	updated := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	if !updated.(GameModel).savingAs {
		t.Fatal("ctrl+a should open the save-as prompt")
	}

	// Letters go to the prompt, not to the round
	updated = send(t, updated, typeText("backup"), tea.KeyMsg{Type: tea.KeyEnter})
	if ctrl.View().Wrong != 0 {
		t.Error("typing a file name should not guess letters")
	}

	want := filepath.Join(ctrl.Saves().Dir(), "backup"+saves.Suffix)
	if ctrl.View().SavePath != want {
		t.Errorf("SavePath = %q, expected %q", ctrl.View().SavePath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("save file missing: %v", err)
	}
	if updated.(GameModel).savingAs {
		t.Error("prompt should close after saving")
	}
}

func TestGameModelSaveAsCanceled(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "hal")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)
	before := ctrl.View().SavePath

	updated := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlA}, typeText("other"), tea.KeyMsg{Type: tea.KeyEsc})
	if updated.(GameModel).savingAs {
		t.Error("esc should close the prompt")
	}
	if ctrl.View().SavePath != before {
		t.Error("canceled save-as should keep the save path")
	}
}

func TestGameModelNavigation(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		next GameNext
	}{
		{tea.KeyMsg{Type: tea.KeyEsc}, GameNextMenu},
		{tea.KeyMsg{Type: tea.KeyCtrlO}, GameNextLoad},
		{tea.KeyMsg{Type: tea.KeyCtrlW}, GameNextAdmin},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, GameNextQuit},
	}

	for _, tt := range tests {
		ctrl := newTestController(t, "Easy|DOG\n", "ivy")
		m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

		updated, cmd := m.Update(tt.msg)
		if cmd == nil {
			t.Errorf("%s: expected a quit command", tt.msg.String())
		}
		if got := updated.(GameModel).Next(); got != tt.next {
			t.Errorf("%s: Next() = %v, expected %v", tt.msg.String(), got, tt.next)
		}
	}
}

func TestGameModelFlashClears(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "jack")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

	updated := send(t, m, runeKey('2'))
	gm := updated.(GameModel)
	if gm.flash == "" {
		t.Fatal("expected a flash message")
	}

	// A stale timer leaves a newer message alone
	updated = send(t, gm, flashClearMsg{id: gm.flashID - 1})
	if updated.(GameModel).flash == "" {
		t.Error("stale clear removed the flash")
	}

	updated = send(t, updated, flashClearMsg{id: gm.flashID})
	if updated.(GameModel).flash != "" {
		t.Error("flash should be cleared")
	}
}

func TestGameModelView(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "kim")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

	updated := send(t, m, runeKey('o'))
	view := updated.(GameModel).View()

	for _, want := range []string{"HANGMAN", "Player: kim", "_ O _", "Misses: 0/6"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestGameModelNotice(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "lena")

	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)
	if m.Init() != nil {
		t.Error("Init() without a notice should return nil")
	}

	m = m.WithNotice("Load failed.")
	if m.flash != "Load failed." || m.flashColor != core.ColorBrightRed {
		t.Errorf("flash = %q/%v, expected the notice in red", m.flash, m.flashColor)
	}
	if m.Init() == nil {
		t.Error("Init() with a notice should schedule its removal")
	}
	if !strings.Contains(m.View(), "Load failed.") {
		t.Error("View() should show the notice")
	}

	updated := send(t, m, flashClearMsg{id: m.flashID})
	if updated.(GameModel).flash != "" {
		t.Error("notice should clear like any flash")
	}
}

func TestGameModelFailedResetRetries(t *testing.T) {
	ctrl := newTestController(t, "Easy|CAT\n", "mia")
	m := NewGameModel(ctrl, dictionary.Easy, core.DefaultConfig(), nil)

	// Hard has no words, so the round after the win cannot start
	updated := send(t, m, runeKey('3'), runeKey('c'), runeKey('a'), runeKey('t'))
	gm := updated.(GameModel)
	if !strings.Contains(gm.flash, "mia, You won!") || !strings.Contains(gm.flash, "No words") {
		t.Errorf("flash = %q, expected the win and the empty difficulty", gm.flash)
	}

	updated = send(t, gm, runeKey('x'))
	gm = updated.(GameModel)
	if strings.Contains(gm.flash, "You won!") {
		t.Errorf("flash = %q, the win should not be announced again", gm.flash)
	}
	if !strings.Contains(gm.flash, "No words") {
		t.Errorf("flash = %q, expected the empty difficulty again", gm.flash)
	}

	send(t, gm, runeKey('1'), runeKey('c'))
	if v := ctrl.View(); v.Hidden != "C _ _" || v.Wrong != 0 {
		t.Errorf("View() = %q/%d, expected the letter in a new round", v.Hidden, v.Wrong)
	}
}

func TestSaveAsPath(t *testing.T) {
	dir := filepath.Join("data", "saves")

	if got := saveAsPath(dir, "mine"); got != filepath.Join(dir, "mine"+saves.Suffix) {
		t.Errorf("saveAsPath(mine) = %q", got)
	}
	if got := saveAsPath(dir, "x"+saves.Suffix); got != filepath.Join(dir, "x"+saves.Suffix) {
		t.Errorf("saveAsPath keeps one suffix, got %q", got)
	}
	abs := filepath.Join(string(filepath.Separator)+"tmp", "y")
	if got := saveAsPath(dir, abs); got != abs+saves.Suffix {
		t.Errorf("saveAsPath(%q) = %q", abs, got)
	}
}

func TestMenuModelSelect(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "")

	updated := send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if got := updated.(MenuModel).Choice(); got != MenuLoad {
		t.Errorf("Choice() = %v, expected MenuLoad", got)
	}

	updated = send(t, NewMenuModel(core.DefaultConfig(), ""), runeKey('q'))
	if got := updated.(MenuModel).Choice(); got != MenuQuit {
		t.Errorf("Choice() after q = %v, expected MenuQuit", got)
	}
}

func TestDifficultyModel(t *testing.T) {
	m := NewDifficultyModel(nil, dictionary.Medium, 80)

	updated := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if d, ok := updated.(DifficultyModel).Selected(); !ok || d != dictionary.Medium {
		t.Errorf("Selected() = %v, %v; expected Medium, true", d, ok)
	}

	updated = send(t, NewDifficultyModel(nil, dictionary.Easy, 80), runeKey('3'))
	if d, ok := updated.(DifficultyModel).Selected(); !ok || d != dictionary.Hard {
		t.Errorf("Selected() = %v, %v; expected Hard, true", d, ok)
	}

	updated = send(t, NewDifficultyModel(nil, dictionary.Easy, 80), tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := updated.(DifficultyModel).Selected(); ok {
		t.Error("esc should cancel the selection")
	}
}

func TestPromptModelRequiresValue(t *testing.T) {
	m := NewPromptModel("Enter your username:", "name", "Username is required", 80)

	updated := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	pm := updated.(PromptModel)
	if pm.Submitted() || pm.errMsg == "" {
		t.Error("empty value should not submit")
	}

	updated = send(t, pm, typeText("  lena "), tea.KeyMsg{Type: tea.KeyEnter})
	pm = updated.(PromptModel)
	if !pm.Submitted() || pm.Value() != "lena" {
		t.Errorf("Submitted() = %v, Value() = %q; expected true, lena", pm.Submitted(), pm.Value())
	}
}

func TestSavePickerSelect(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "mia")
	newTestSave(t, ctrl, "nate")

	m := NewSavePickerModel(ctrl.Saves(), 100, 30)
	updated := send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	path, ok := updated.(SavePickerModel).Choice().Path()
	if !ok || saves.PlayerFromPath(path) != "nate" {
		t.Errorf("Choice() = %q, %v; expected nate's save", path, ok)
	}
}

func TestSavePickerBack(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "olga")

	m := NewSavePickerModel(ctrl.Saves(), 100, 30)
	updated := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	pm := updated.(SavePickerModel)
	if _, ok := pm.Choice().Path(); ok || pm.IsQuitting() {
		t.Error("esc should cancel without quitting")
	}
}

func newTestSave(t *testing.T, ctrl *controller.Controller, player string) {
	t.Helper()
	if _, err := ctrl.Saves().Create(ctrl.Saves().PathFor(player)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
}

func TestAdminModelAddRemove(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "")
	m := NewAdminModel(ctrl, 100, 30)

	// Switch to Medium and add a word
	updated := send(t, m,
		tea.KeyMsg{Type: tea.KeyTab},
		runeKey('a'),
		typeText("Ocean"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	am := updated.(AdminModel)
	if am.difficulty != dictionary.Medium {
		t.Fatalf("difficulty = %v, expected Medium", am.difficulty)
	}
	if words := ctrl.Bank().WordsOf(dictionary.Medium); len(words) != 1 || words[0].Raw() != "Ocean" {
		t.Errorf("Medium words = %v, expected [Ocean]", words)
	}

	reloaded, err := dictionary.Load(ctrl.Bank().Path())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.WordsOf(dictionary.Medium)) != 1 {
		t.Error("added word should be persisted")
	}

	// Back to Easy and remove DOG
	updated = send(t, am, tea.KeyMsg{Type: tea.KeyShiftTab}, runeKey('d'))
	if n := len(ctrl.Bank().WordsOf(dictionary.Easy)); n != 0 {
		t.Errorf("Easy has %d words, expected 0", n)
	}
	if am := updated.(AdminModel); am.statusIsErr || !strings.Contains(am.status, "Removed") {
		t.Errorf("status = %q, expected a removal notice", am.status)
	}
}

func TestAdminModelRejectsInvalidWord(t *testing.T) {
	ctrl := newTestController(t, "Easy|DOG\n", "")
	m := NewAdminModel(ctrl, 100, 30)

	updated := send(t, m, runeKey('a'), typeText("a|b"), tea.KeyMsg{Type: tea.KeyEnter})
	if am := updated.(AdminModel); !am.statusIsErr {
		t.Errorf("status = %q, expected an error", am.status)
	}
	if len(ctrl.Bank().WordsOf(dictionary.Easy)) != 1 {
		t.Error("invalid word should not be added")
	}
}
