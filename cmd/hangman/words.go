package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hangman/internal/controller"
	"github.com/vovakirdan/tui-hangman/internal/dictionary"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage the word bank",
	Long: `List, add and remove the words rounds are drawn from.
Edits are written to the word bank file immediately.

Examples:
  hangman words list
  hangman words list hard
  hangman words add medium Ocean
  hangman words remove easy test`,
}

var wordsListCmd = &cobra.Command{
	Use:   "list [difficulty]",
	Short: "List words, optionally for one difficulty",
	Args:  cobra.MaximumNArgs(1),
	Run:   runWordsList,
}

var wordsAddCmd = &cobra.Command{
	Use:   "add <difficulty> <word>",
	Short: "Add a word",
	Args:  cobra.ExactArgs(2),
	Run:   runWordsAdd,
}

var wordsRemoveCmd = &cobra.Command{
	Use:   "remove <difficulty> <word>",
	Short: "Remove the first matching word",
	Args:  cobra.ExactArgs(2),
	Run:   runWordsRemove,
}

func init() {
	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsAddCmd)
	wordsCmd.AddCommand(wordsRemoveCmd)
}

func runWordsList(cmd *cobra.Command, args []string) {
	a, err := openApp(cmd, false)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	difficulties := dictionary.Difficulties()
	if len(args) == 1 {
		d, err := dictionary.ParseDifficultyFold(args[0])
		if err != nil {
			a.Close()
			fail(err)
		}
		difficulties = []dictionary.Difficulty{d}
	}

	fmt.Printf("Word bank %s:\n", a.bank.Path())
	fmt.Println()
	for _, d := range difficulties {
		words := a.bank.WordsOf(d)
		raws := make([]string, len(words))
		for i, w := range words {
			raws[i] = w.Raw()
		}
		fmt.Printf("  %-6s (%d)  %s\n", d, len(words), strings.Join(raws, ", "))
	}
}

func runWordsAdd(cmd *cobra.Command, args []string) {
	a, d := openWordsApp(cmd, args[0])
	defer a.Close()

	ctrl := a.newController(controller.FixedDifficulty(d))
	if err := ctrl.AddWord(args[1], d); err != nil {
		a.Close()
		fail(err)
	}
	fmt.Printf("Added %q to %s.\n", args[1], d)
}

func runWordsRemove(cmd *cobra.Command, args []string) {
	a, d := openWordsApp(cmd, args[0])
	defer a.Close()

	ctrl := a.newController(controller.FixedDifficulty(d))
	removed, err := ctrl.RemoveWord(args[1], d)
	if err != nil {
		a.Close()
		fail(err)
	}
	if !removed {
		fmt.Printf("%q is not a %s word.\n", args[1], d)
		return
	}
	fmt.Printf("Removed %q from %s.\n", args[1], d)
}

// openWordsApp opens the app and parses the difficulty argument.
func openWordsApp(cmd *cobra.Command, difficulty string) (*app, dictionary.Difficulty) {
	a, err := openApp(cmd, false)
	if err != nil {
		fail(err)
	}
	d, err := dictionary.ParseDifficultyFold(difficulty)
	if err != nil {
		a.Close()
		fail(err)
	}
	return a, d
}
