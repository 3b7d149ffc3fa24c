// hangman is a terminal word-guessing game with per-player save files.
//
// Usage:
//
//	hangman                          - Start the interactive menu
//	hangman menu                     - Same as above
//	hangman play <player>            - Play directly as a player
//	hangman load [save-file]         - Resume a save (picker if no file given)
//	hangman saves                    - List save files
//	hangman words list [difficulty]  - Show the word bank
//	hangman words add <diff> <word>  - Add a word
//	hangman words remove <diff> <w>  - Remove a word
//	hangman stats [player]           - Show round history
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.hangman/config.yaml)
//	--words <path>      - Word bank file
//	--saves <dir>       - Save directory
//	--db <path>         - History database
//	--seed <value>      - RNG seed for reproducible word picks
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagWords    string
	flagSaves    string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hangman",
	Short: "Hangman - guess the word before the gallows is complete",
	Long: `Hangman is a terminal word-guessing game. Each round draws a word
from an Easy, Medium or Hard list; six wrong letters and the round is lost.
Progress is kept in one save file per player.

Available commands:
  menu     - Interactive menu (default)
  play     - Play directly as a player
  load     - Resume a save file
  saves    - List save files
  words    - Manage the word bank
  stats    - View round history

Examples:
  hangman
  hangman play alice --difficulty hard
  hangman load ~/.hangman/saves/alice.hangman.txt
  hangman words add medium Ocean
  hangman stats alice`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagWords, "words", "", "Path to the word bank file")
	rootCmd.PersistentFlags().StringVar(&flagSaves, "saves", "", "Directory of save files")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the history database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(statsCmd)
}

// fail prints err and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
