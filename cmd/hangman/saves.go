package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save files",
	Long:  `Shows the save files of the save directory with their players.`,
	Args:  cobra.NoArgs,
	Run:   runSaves,
}

func runSaves(cmd *cobra.Command, _ []string) {
	a, err := openApp(cmd, false)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	entries, err := a.saves.Entries()
	if err != nil {
		a.Close()
		fail(err)
	}

	if len(entries) == 0 {
		fmt.Printf("No saves in %s.\n", a.saves.Dir())
		fmt.Println()
		fmt.Println("Run 'hangman play <player>' to create one.")
		return
	}

	fmt.Printf("Saves in %s:\n", a.saves.Dir())
	fmt.Println()

	// Calculate column widths
	maxPlayerLen := len("Player")
	for _, e := range entries {
		if len(e.Player) > maxPlayerLen {
			maxPlayerLen = len(e.Player)
		}
	}

	fmt.Printf("  %-*s  %-16s  %s\n", maxPlayerLen, "Player", "Modified", "File")
	fmt.Printf("  %-*s  %-16s  %s\n", maxPlayerLen, "------", "--------", "----")

	for _, e := range entries {
		fmt.Printf("  %-*s  %-16s  %s\n", maxPlayerLen, e.Player, e.Modified.Format("2006-01-02 15:04"), filepath.Base(e.Path))
	}

	fmt.Println()
	fmt.Println("Run 'hangman load <file>' to resume one.")
}
