package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/retrobuddy/internal/retrosheet"
)

var diffCmd = &cobra.Command{
	Use:   "diff <event-file>",
	Short: "Show what the editor changed in each saved game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := retrosheet.ParseFile(args[0])
		if err != nil {
			return err
		}
		store := &retrosheet.GameStore{Dir: cfg.OutputDir}

		out := cmd.OutOrStdout()
		var text retrosheet.TextRenderer
		shown := 0
		for _, g := range f.Games {
			saved, err := store.Load(g.ID)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				return err
			}
			before, err := text.Render(g)
			if err != nil {
				return err
			}
			after, err := text.Render(saved)
			if err != nil {
				return err
			}
			d, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(string(before)),
				B:        difflib.SplitLines(string(after)),
				FromFile: fmt.Sprintf("%s (%s)", args[0], g.ID),
				ToFile:   store.Path(g.ID),
				Context:  2,
			})
			if err != nil {
				return err
			}
			shown++
			if d == "" {
				fmt.Fprintf(out, "%s: no changes\n", g.ID)
				continue
			}
			fmt.Fprint(out, d)
		}
		if shown == 0 {
			fmt.Fprintln(out, "no saved games for this file")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
