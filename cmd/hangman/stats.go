package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [player]",
	Short: "Show round history",
	Long: `Display win/loss statistics for every player, or the recent rounds
of one player.

Examples:
  hangman stats
  hangman stats alice`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	a, err := openApp(cmd, false)
	if err != nil {
		fail(err)
	}
	defer a.Close()

	if a.history == nil {
		fmt.Fprintln(os.Stderr, "Round history is disabled or unavailable.")
		return
	}

	if len(args) == 1 {
		printPlayerStats(a, args[0])
		return
	}

	all, err := a.history.AllPlayersStats()
	if err != nil {
		a.Close()
		fail(err)
	}

	if len(all) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Run 'hangman play <player>' and finish a round!")
		return
	}

	players := make([]string, 0, len(all))
	for name := range all {
		players = append(players, name)
	}
	sort.Strings(players)

	fmt.Println("Statistics")
	fmt.Println()
	fmt.Printf("  %-16s  %6s  %4s  %4s  %6s  %s\n", "Player", "Rounds", "Won", "Lost", "Rate", "Last played")
	fmt.Printf("  %-16s  %6s  %4s  %4s  %6s  %s\n", "------", "------", "---", "----", "----", "-----------")
	for _, name := range players {
		s := all[name]
		fmt.Printf("  %-16s  %6d  %4d  %4d  %5.0f%%  %s\n",
			name, s.Rounds, s.Wins, s.Losses, s.WinRate()*100, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

// printPlayerStats prints one player's summary and recent rounds.
func printPlayerStats(a *app, player string) {
	s, err := a.history.PlayerStats(player)
	if err != nil {
		a.Close()
		fail(err)
	}
	rounds, err := a.history.RecentRounds(player, 10)
	if err != nil {
		a.Close()
		fail(err)
	}

	fmt.Printf("Statistics - %s\n", player)
	fmt.Println()

	if s.Rounds == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	fmt.Printf("Rounds: %d  Won: %d  Lost: %d  Win rate: %.0f%%  Avg misses: %.1f\n",
		s.Rounds, s.Wins, s.Losses, s.WinRate()*100, s.AvgWrong)
	fmt.Println()

	fmt.Printf("  %-16s  %-6s  %-6s  %6s  %s\n", "Word", "Level", "Result", "Misses", "Date")
	fmt.Printf("  %-16s  %-6s  %-6s  %6s  %s\n", "----", "-----", "------", "------", "----")
	for _, r := range rounds {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-16s  %-6s  %-6s  %6d  %s\n", r.Word, r.Difficulty, result, r.Wrong, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
