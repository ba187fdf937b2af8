package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/retrobuddy/internal/editor"
	"github.com/fakeyudi/retrobuddy/internal/retrosheet"
)

var (
	showJSON   bool
	showGameID string
)

var showCmd = &cobra.Command{
	Use:   "show <event-file>",
	Short: "Print the games and plays of an event file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := retrosheet.ParseFile(args[0])
		if err != nil {
			return err
		}
		var ids []string
		if showGameID != "" {
			ids = append(ids, showGameID)
		}
		games, err := f.Select(ids...)
		if err != nil {
			return err
		}

		if showJSON {
			data, err := (&retrosheet.JSONRenderer{}).Render(games...)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		for _, g := range games {
			printGame(cmd.OutOrStdout(), g)
		}
		if len(f.Skipped) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "skipped lines: %v\n", f.Skipped)
		}
		return nil
	},
}

// printGame writes one line per play; an asterisk marks incomplete plays.
func printGame(w io.Writer, g *retrosheet.Game) {
	incomplete := 0
	for i := range g.Plays {
		if editor.IsIncomplete(&g.Plays[i]) {
			incomplete++
		}
	}
	fmt.Fprintf(w, "## %s  (%d plays, %d incomplete)\n", g.ID, len(g.Plays), incomplete)
	for i := range g.Plays {
		p := &g.Plays[i]
		mark := " "
		if editor.IsIncomplete(p) {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %4d  %2d %-4s %-8s %s  %-14s %s\n",
			mark, i+1, p.Inning, p.Team, p.Batter, p.OriginalCount, p.Pitches, p.Result)
	}
	fmt.Fprintln(w)
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print JSON instead of a play listing")
	showCmd.Flags().StringVar(&showGameID, "game-id", "", "only show the game with this id")
	rootCmd.AddCommand(showCmd)
}
