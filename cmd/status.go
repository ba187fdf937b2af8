package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/retrobuddy/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the last editing run left off",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewSessionStore()
		if err != nil {
			return err
		}

		s, err := store.Load()
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				cmd.Println("no saved session")
				return nil
			}
			return err
		}

		cmd.Printf("File: %s\n", s.InputPath)
		cmd.Printf("Game: %s\n", s.GameID)
		cmd.Printf("Play: %d\n", s.AtBatIndex+1)
		cmd.Printf("Mode: %s\n", s.Mode)
		cmd.Printf("Last edit: %s\n", s.UpdatedAt.Format(time.RFC3339))
		cmd.Printf("Games saved: %d\n", len(s.Saved))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
