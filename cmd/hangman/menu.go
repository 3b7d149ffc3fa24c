package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hangman/internal/controller"
	"github.com/vovakirdan/tui-hangman/internal/core"
	"github.com/vovakirdan/tui-hangman/internal/dictionary"
	"github.com/vovakirdan/tui-hangman/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start hangman with the interactive menu",
	Long: `Start hangman in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Leaving a game returns to the menu.

Controls in game:
  a-z      - Guess a letter
  1/2/3    - Difficulty of the next round
  Ctrl+N   - New word
  Ctrl+S   - Save
  Ctrl+A   - Save as
  Ctrl+O   - Load a save
  Ctrl+W   - Word admin
  Esc      - Back to menu
  Ctrl+C   - Quit

Examples:
  hangman menu
  hangman menu --words ./words.txt`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	a, err := openApp(cmd, true)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	cfg := a.runtimeConfig()
	notice := ""

	for {
		menuResult, err := tui.RunMenu(cfg, notice)
		if err != nil {
			a.Close()
			fail(err)
		}
		cfg = menuResult.Config
		notice = ""

		var quit bool
		switch menuResult.Choice {
		case tui.MenuNewGame:
			quit, err = newGameFlow(a, cfg)
		case tui.MenuLoad:
			quit, err = loadFlow(a, cfg)
		case tui.MenuAdmin:
			quit, err = tui.RunAdmin(a.newController(controller.FixedDifficulty(a.defaultDifficulty())), cfg)
		case tui.MenuStats:
			var goBack bool
			goBack, err = tui.RunStats(a.history, "", cfg)
			quit = !goBack && err == nil
		default:
			return
		}

		if err != nil {
			a.logger.Error("menu action failed", "choice", menuResult.Choice, "error", err)
			notice = menuNotice(err)
		}
		if quit {
			return
		}
	}
}

// newGameFlow asks for the player and the difficulty, then plays.
func newGameFlow(a *app, cfg core.RuntimeConfig) (quit bool, err error) {
	player, ok, err := tui.RunPrompt("Enter your username:", "username", "Username is required to start the game.", cfg)
	if err != nil || !ok {
		return false, err
	}

	d, ok, err := tui.RunDifficultySelect(a.bank.Counts(), a.defaultDifficulty(), cfg)
	if err != nil || !ok {
		return false, err
	}

	ctrl := a.newController(controller.FixedDifficulty(d))
	if err := ctrl.NewGame(player); err != nil {
		return false, err
	}
	return runSession(a, ctrl, d, cfg)
}

// loadFlow picks a save file and plays it.
func loadFlow(a *app, cfg core.RuntimeConfig) (quit bool, err error) {
	sel, quit, err := tui.RunSavePicker(a.saves, cfg)
	if err != nil || quit {
		return quit, err
	}
	if _, ok := sel.Path(); !ok {
		return false, nil
	}

	ctrl := a.newController(controller.FixedDifficulty(a.defaultDifficulty()))
	if err := ctrl.Load(sel); err != nil {
		return false, err
	}
	return runSession(a, ctrl, a.defaultDifficulty(), cfg)
}

// runSession shows the game board until the player goes back to the menu
// or quits. Loading and word admin return to the board afterwards.
func runSession(a *app, ctrl *controller.Controller, next dictionary.Difficulty, cfg core.RuntimeConfig) (quit bool, err error) {
	var notice string
	for {
		if v := ctrl.View(); v.HasRound {
			next = v.Difficulty
		}

		where, err := tui.RunGame(ctrl, next, notice, cfg, a.logger)
		if err != nil {
			return true, err
		}
		notice = ""

		switch where {
		case tui.GameNextMenu:
			return false, nil

		case tui.GameNextLoad:
			sel, quit, err := tui.RunSavePicker(a.saves, cfg)
			if err != nil || quit {
				return quit, err
			}
			if err := ctrl.Load(sel); err != nil {
				a.logger.Error("load failed", "error", err)
				notice = "Load failed. " + menuNotice(err)
			}

		case tui.GameNextAdmin:
			quit, err := tui.RunAdmin(ctrl, cfg)
			if err != nil || quit {
				return quit, err
			}

		default:
			return true, nil
		}
	}
}

// menuNotice formats an error for the menu banner.
func menuNotice(err error) string {
	if errors.Is(err, dictionary.ErrEmptyPartition) {
		return "No words for that difficulty. Add some in Word admin."
	}
	return fmt.Sprintf("Error: %v", err)
}
