package retrosheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Extension is the file extension used for per-game output files.
const Extension = ".EVN"

// GameStore writes each edited game to its own event file.
type GameStore struct {
	Dir string
	// Inputter, when set, is recorded as the game's "inputter" info unless the
	// game already names one.
	Inputter string

	renderer TextRenderer
}

// NewGameStore returns a store writing into dir, creating it if needed.
func NewGameStore(dir, inputter string) (*GameStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &GameStore{Dir: dir, Inputter: inputter}, nil
}

// Path returns the output file for game id.
func (s *GameStore) Path(id string) string {
	return filepath.Join(s.Dir, id+Extension)
}

// Save writes g to Path(g.ID) atomically via a temp file + os.Rename.
// Saving the same game twice produces the same file.
func (s *GameStore) Save(g *Game) (err error) {
	if s.Inputter != "" {
		g.EnsureInfo("inputter", s.Inputter)
	}
	data, err := s.renderer.Render(g)
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", g.ID, err)
	}

	tmp, err := os.CreateTemp(s.Dir, g.ID+"-*.EVN.tmp")
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", g.ID, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save game %s: %w", g.ID, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to save game %s: %w", g.ID, err)
	}
	if err = os.Rename(tmpName, s.Path(g.ID)); err != nil {
		return fmt.Errorf("failed to save game %s: %w", g.ID, err)
	}
	return nil
}

// Load reads the saved copy of game id. It returns os.ErrNotExist (wrapped)
// when the game has never been saved.
func (s *GameStore) Load(id string) (*Game, error) {
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		return nil, fmt.Errorf("reading saved game %s: %w", id, err)
	}
	f, err := (&Parser{}).Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing saved game %s: %w", id, err)
	}
	g, _, ok := f.Game(id)
	if !ok {
		return nil, fmt.Errorf("saved game %s: %w", id, ErrNoGames)
	}
	return g, nil
}

// Resume replaces every game in f that has a saved copy with that copy.
// It returns the ids that were replaced.
func (s *GameStore) Resume(f *File) ([]string, error) {
	var resumed []string
	for i, g := range f.Games {
		saved, err := s.Load(g.ID)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return resumed, err
		}
		f.Games[i] = saved
		resumed = append(resumed, g.ID)
	}
	return resumed, nil
}
