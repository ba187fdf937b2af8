// Package retrosheet reads and writes Retrosheet event files.
package retrosheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fakeyudi/retrobuddy/internal/count"
)

// Team is the side at bat: 0 for the visitors, 1 for the home team.
type Team int

const (
	Visitors Team = 0
	HomeTeam Team = 1
)

func (t Team) String() string {
	if t == HomeTeam {
		return "home"
	}
	return "away"
}

// Play is one play record: a plate appearance, or part of one when a runner
// event interrupts it.
type Play struct {
	Inning        int    `json:"inning"`
	Team          Team   `json:"team"`
	Batter        string `json:"batter"`
	Count         string `json:"count"`          // working count, always two digits
	OriginalCount string `json:"original_count"` // as read; may be count.Unknown
	Pitches       string `json:"pitches"`
	Result        string `json:"result"`
	Edited        bool   `json:"edited"`
}

// Plate returns the fields that decide count inheritance.
func (p *Play) Plate() count.Plate {
	return count.Plate{Inning: p.Inning, Team: int(p.Team), Batter: p.Batter, Count: p.Count}
}

// WrittenCount is the count field emitted for p.
//
// An unknown original count is only replaced once the play has been edited
// and has a result; until then the "??" is written back untouched. A known
// original count is replaced by the working count as soon as p is edited.
func (p *Play) WrittenCount() string {
	if !p.Edited {
		return p.OriginalCount
	}
	if p.OriginalCount == count.Unknown && p.Result == "" {
		return p.OriginalCount
	}
	return p.Count
}

// Info is an "info" record. Value keeps the quoting it was read with.
type Info struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Player is a "start" or "sub" record.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     Team   `json:"team"`
	Order    int    `json:"order"`
	Position int    `json:"position"`
}

// Insert is a record that sits between plays: a substitution, a comment or an
// adjustment record such as "padj". Before is the index of the play it
// precedes; len(Plays) places it after the last play.
type Insert struct {
	Before int     `json:"before"`
	Kind   string  `json:"kind"`
	Sub    *Player `json:"sub,omitempty"`
	Raw    string  `json:"raw,omitempty"` // everything after "kind,"
}

// Data is a trailing "data" record, e.g. earned runs per pitcher.
type Data struct {
	Raw string `json:"raw"`
}

// Game is one game from an event file.
type Game struct {
	ID       string   `json:"id"`
	Version  string   `json:"version"`
	Info     []Info   `json:"info"`
	Starters []Player `json:"starters"`
	Plays    []Play   `json:"plays"`
	Inserts  []Insert `json:"inserts,omitempty"`
	Data     []Data   `json:"data,omitempty"`
}

// InfoValue returns the unquoted value of the first info record named key.
func (g *Game) InfoValue(key string) (string, bool) {
	for _, in := range g.Info {
		if in.Key == key {
			return strings.Trim(in.Value, `"`), true
		}
	}
	return "", false
}

// EnsureInfo appends an info record unless one named key already exists.
// It reports whether the game changed.
func (g *Game) EnsureInfo(key, value string) bool {
	if _, ok := g.InfoValue(key); ok {
		return false
	}
	g.Info = append(g.Info, Info{Key: key, Value: value})
	return true
}

// Substitutions returns the "sub" records in file order.
func (g *Game) Substitutions() []Insert {
	return g.inserts("sub")
}

// Comments returns the "com" records in file order.
func (g *Game) Comments() []Insert {
	return g.inserts("com")
}

func (g *Game) inserts(kind string) []Insert {
	var out []Insert
	for _, in := range g.Inserts {
		if in.Kind == kind {
			out = append(out, in)
		}
	}
	return out
}

// Prior returns the play before index i, or nil.
func (g *Game) Prior(i int) *Play {
	if i <= 0 || i > len(g.Plays) {
		return nil
	}
	return &g.Plays[i-1]
}

// StartingCount returns the count play i starts from.
func (g *Game) StartingCount(i int) count.Count {
	prior := g.Prior(i)
	if prior == nil {
		return count.Zero
	}
	pl := prior.Plate()
	return count.StartingFor(&pl, g.Plays[i].Plate())
}

// Recount recomputes the working count of play i from its pitches.
func (g *Game) Recount(i int) count.Tally {
	t := count.Derive(g.Plays[i].Pitches, g.StartingCount(i))
	g.Plays[i].Count = t.Display().String()
	return t
}

// Edited reports whether any play in g has been edited.
func (g *Game) Edited() bool {
	for i := range g.Plays {
		if g.Plays[i].Edited {
			return true
		}
	}
	return false
}

// ErrUnknownGame is returned by File.Select for an id not in the file.
var ErrUnknownGame = errors.New("unknown game id")

// File is a parsed event file.
type File struct {
	Games []*Game `json:"games"`
	// Skipped holds the 1-based line numbers that could not be read.
	Skipped []int `json:"skipped,omitempty"`
}

// Game returns the game with the given id.
func (f *File) Game(id string) (*Game, int, bool) {
	for i, g := range f.Games {
		if g.ID == id {
			return g, i, true
		}
	}
	return nil, -1, false
}

// Select returns the games named by ids, in file order. No ids selects every game.
func (f *File) Select(ids ...string) ([]*Game, error) {
	if len(ids) == 0 {
		return f.Games, nil
	}
	var out []*Game
	for _, id := range ids {
		if _, _, ok := f.Game(id); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownGame, id)
		}
	}
	for _, g := range f.Games {
		for _, id := range ids {
			if g.ID == id {
				out = append(out, g)
				break
			}
		}
	}
	return out, nil
}
