package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatchReportsOnlyWatchedFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "2024ANA.EVA")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(input, []byte("id,ANA202404010\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 16)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, []string{input}, func(e Event) { events <- e }) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(input, []byte("id,ANA202404011\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-events:
		if e.Path != input {
			t.Errorf("event for %q, want %q", e.Path, input)
		}
		if e.Removed() {
			t.Errorf("write reported as removal: %v", e.Op)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event for the watched file")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), []string{filepath.Join(t.TempDir(), "gone", "x.EVN")}, func(Event) {})
	if err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestEventRemoved(t *testing.T) {
	if !(Event{Op: fsnotify.Rename}).Removed() || !(Event{Op: fsnotify.Remove}).Removed() {
		t.Error("rename and remove are removals")
	}
	if (Event{Op: fsnotify.Write}).Removed() {
		t.Error("write is not a removal")
	}
}
