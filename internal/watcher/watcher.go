// Package watcher reports outside changes to the files an editing run depends on.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is a change to one watched file.
type Event struct {
	Path string
	Op   fsnotify.Op
	Time time.Time
}

// Removed reports whether the file went away, including by being renamed.
func (e Event) Removed() bool {
	return e.Op.Has(fsnotify.Remove) || e.Op.Has(fsnotify.Rename)
}

// Watch watches the directories holding paths and calls notify for every
// write, create, remove or rename of one of those files until ctx is
// cancelled. Directories are watched rather than files so that editors that
// replace a file through a rename are still seen.
func Watch(ctx context.Context, paths []string, notify func(Event)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	wanted := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !wanted[name] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				notify(Event{Path: name, Op: ev.Op, Time: time.Now()})
			}

		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
		}
	}
}
