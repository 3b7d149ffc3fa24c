package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hangman/internal/controller"
	"github.com/vovakirdan/tui-hangman/internal/platform/tui"
)

var loadCmd = &cobra.Command{
	Use:   "load [save-file]",
	Short: "Resume a save file",
	Long: `Resume the session stored in a save file.

Without an argument a picker lists the files of the save directory.
A save without a round starts a new one at the default difficulty.

Examples:
  hangman load
  hangman load ~/.hangman/saves/alice.hangman.txt`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLoad,
}

func runLoad(cmd *cobra.Command, args []string) {
	a, err := openApp(cmd, true)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	cfg := a.runtimeConfig()

	sel := controller.Canceled()
	if len(args) == 1 {
		sel = controller.Selected(args[0])
	} else {
		var quit bool
		sel, quit, err = tui.RunSavePicker(a.saves, cfg)
		if err != nil {
			a.Close()
			fail(err)
		}
		if quit {
			return
		}
	}
	if _, ok := sel.Path(); !ok {
		return
	}

	ctrl := a.newController(controller.FixedDifficulty(a.defaultDifficulty()))
	if err := ctrl.Load(sel); err != nil {
		a.Close()
		fail(err)
	}

	if _, err := runSession(a, ctrl, a.defaultDifficulty(), cfg); err != nil {
		a.Close()
		fail(err)
	}
}
