package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/retrobuddy/internal/editor"
	"github.com/fakeyudi/retrobuddy/internal/tui"
)

var (
	keysHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	keysBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	keysKeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every key binding and check the tables for conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		var shell [][]string
		for _, b := range tui.DefaultKeyMap().Bindings() {
			shell = append(shell, []string{b.Help().Key, "", b.Help().Desc})
		}
		sections := []struct {
			title string
			rows  [][]string
		}{
			{"Any mode", shell},
			{"PITCH", keyRows(editor.PitchKeys, editor.PitchActions)},
			{"RESULT", keyRows(editor.ResultKeys, editor.ImmediateKeys)},
			{"DETAIL: hit type", keyRows(editor.ShapeKeys)},
			{"DETAIL: out type", keyRows(editor.OutTypeKeys, editor.OutCategoryKeys)},
		}
		for _, s := range sections {
			fmt.Fprintln(out, keysHeaderStyle.Render(s.title))
			fmt.Fprintln(out, keyTable(s.rows))
			fmt.Fprintln(out)
		}

		conflicts := editor.ValidateKeyTables()
		if len(conflicts) == 0 {
			fmt.Fprintln(out, "no key conflicts")
			return nil
		}
		for _, c := range conflicts {
			fmt.Fprintf(out, "conflict: %s\n", c)
		}
		return fmt.Errorf("%d key conflicts", len(conflicts))
	},
}

func keyRows(tables ...[]editor.KeyEntry) [][]string {
	var rows [][]string
	for _, t := range tables {
		for _, e := range t {
			rows = append(rows, []string{e.Key, e.Code, e.Label})
		}
	}
	return rows
}

func keyTable(rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(keysBorderStyle).
		BorderHeader(true).
		BorderRow(false).
		Headers("Key", "Code", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return keysHeaderStyle.Padding(0, 1)
			}
			if col == 0 {
				return keysKeyStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
