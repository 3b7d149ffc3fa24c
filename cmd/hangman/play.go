package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hangman/internal/controller"
	"github.com/vovakirdan/tui-hangman/internal/dictionary"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play <player>",
	Short: "Play as a player",
	Long: `Start or resume the session of a player.

The player's save file is created if needed. A save with a round in
progress resumes it; otherwise a new round starts at the chosen difficulty.

Difficulty options:
  easy, medium, hard (default from config)

Examples:
  hangman play alice
  hangman play bob --difficulty hard
  hangman play carol --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard")
}

func runPlay(cmd *cobra.Command, args []string) {
	a, err := openApp(cmd, true)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	d := a.defaultDifficulty()
	if flagDifficulty != "" {
		if d, err = dictionary.ParseDifficultyFold(flagDifficulty); err != nil {
			a.Close()
			fail(err)
		}
	}

	ctrl := a.newController(controller.FixedDifficulty(d))
	if err := ctrl.NewGame(args[0]); err != nil {
		a.Close()
		fail(err)
	}

	if _, err := runSession(a, ctrl, d, a.runtimeConfig()); err != nil {
		a.Close()
		fail(err)
	}
}
