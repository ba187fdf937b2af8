package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/retrobuddy/internal/editor"
	"github.com/fakeyudi/retrobuddy/internal/retrosheet"
	"github.com/fakeyudi/retrobuddy/internal/session"
	"github.com/fakeyudi/retrobuddy/internal/tui"
	"github.com/fakeyudi/retrobuddy/internal/watcher"
)

var (
	editGameID string
	editFresh  bool
)

var editCmd = &cobra.Command{
	Use:   "edit <event-file>",
	Short: "Open an event file in the play editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		ed, err := openEditor(path)
		if err != nil {
			return err
		}

		if !term.IsTerminal(os.Stdin.Fd()) {
			return errors.New("edit needs an interactive terminal")
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		var hook func(func(tea.Msg))
		if cfg.Watch() {
			ready := make(chan func(tea.Msg), 1)
			hook = func(send func(tea.Msg)) { ready <- send }
			go watchInput(ctx, path, ready)
		}
		if err := tui.Run(ed.sess, ed.options(), hook); err != nil {
			return err
		}

		ed.record(ed.sess)
		ed.printSummary(cmd)
		return nil
	},
}

// watchInput forwards outside changes to path into the running program once
// it has started.
func watchInput(ctx context.Context, path string, ready <-chan func(tea.Msg)) {
	var send func(tea.Msg)
	select {
	case send = <-ready:
	case <-ctx.Done():
		return
	}
	err := watcher.Watch(ctx, []string{path}, func(ev watcher.Event) {
		logger.Info("input file changed", "path", ev.Path, "op", ev.Op.String())
		send(tui.InputChangedMsg{Path: ev.Path, Removed: ev.Removed()})
	})
	if err != nil {
		logger.Warn("watching input file failed", "path", path, "error", err)
	}
}

// editRun ties an editor session to the resume store and the game store.
type editRun struct {
	path   string
	sess   *editor.Session
	games  *retrosheet.GameStore
	store  session.SessionStore
	resume *session.Session
}

// openEditor parses the event file, swaps in previously saved games and
// restores the cursor from the last run on the same file.
func openEditor(path string) (*editRun, error) {
	f, err := retrosheet.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if len(f.Skipped) > 0 {
		logger.Warn("skipped unreadable lines", "path", path, "lines", f.Skipped)
	}

	games, err := retrosheet.NewGameStore(cfg.OutputDir, inputter())
	if err != nil {
		return nil, err
	}
	if !editFresh {
		resumed, err := games.Resume(f)
		if err != nil {
			return nil, err
		}
		if len(resumed) > 0 {
			logger.Info("resumed saved games", "games", resumed)
		}
	}

	sess, err := editor.New(f.Games, games, editor.WithLogger(logger.Logger))
	if err != nil {
		return nil, err
	}

	store, err := session.NewSessionStore()
	if err != nil {
		return nil, err
	}
	prev, err := store.Load()
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		logger.Warn("ignoring unreadable session state", "error", err)
	}
	if prev.Matches(path) && !editFresh {
		sess.Restore(prev.GameIndex, prev.AtBatIndex, editor.ParseMode(prev.Mode))
	}

	if editGameID != "" {
		if !sess.SelectGame(editGameID) {
			return nil, fmt.Errorf("%w: %s", retrosheet.ErrUnknownGame, editGameID)
		}
	}

	resume := &session.Session{ID: sess.ID, InputPath: path, StartTime: time.Now()}
	if prev.Matches(path) && !editFresh {
		resume.Saved = prev.Saved
	}
	return &editRun{path: path, sess: sess, games: games, store: store, resume: resume}, nil
}

// record writes the current cursor to the resume store.
func (r *editRun) record(s *editor.Session) {
	r.resume.GameID = s.Game().ID
	r.resume.GameIndex = s.GameIndex()
	r.resume.AtBatIndex = s.AtBatIndex()
	r.resume.Mode = s.Mode().String()
	r.resume.UpdatedAt = time.Now()
	if s.Game().Edited() {
		r.resume.MarkSaved(s.Game().ID)
	}
	if err := r.store.Save(r.resume); err != nil {
		logger.Error("saving session state failed", "error", err)
	}
}

func (r *editRun) options() tui.Options {
	return tui.Options{
		Filename:    filepath.Base(r.path),
		ConfirmQuit: cfg.Confirm(),
		OnChange:    r.record,
	}
}

func (r *editRun) printSummary(cmd *cobra.Command) {
	if len(r.resume.Saved) == 0 {
		cmd.Println("no games edited")
		return
	}
	for _, id := range r.resume.Saved {
		cmd.Printf("saved %s\n", r.games.Path(id))
	}
}

func init() {
	editCmd.Flags().StringVar(&editGameID, "game-id", "", "start at the game with this id")
	editCmd.Flags().BoolVar(&editFresh, "fresh", false, "ignore saved copies and the last position")
	rootCmd.AddCommand(editCmd)
}
