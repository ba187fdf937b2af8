package retrosheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fakeyudi/retrobuddy/internal/count"
)

// ErrNoGames is returned when an event file has no "id" record.
var ErrNoGames = errors.New("no games found")

const defaultVersion = "1"

// EventParser reads an event file into games.
type EventParser interface {
	Parse(data []byte) (*File, error)
}

// Parser reads the line-oriented Retrosheet format. Malformed lines are
// skipped and reported in File.Skipped rather than failing the whole file.
type Parser struct{}

// ParseFile reads and parses the event file at path.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("event file not found: %s", path)
		}
		return nil, fmt.Errorf("reading event file: %w", err)
	}
	return (&Parser{}).Parse(data)
}

func (p *Parser) Parse(data []byte) (*File, error) {
	f := &File{}
	var g *Game

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		kind, rest, _ := strings.Cut(line, ",")

		if kind == "id" {
			g = &Game{ID: strings.TrimSpace(rest)}
			f.Games = append(f.Games, g)
			continue
		}
		if g == nil {
			f.Skipped = append(f.Skipped, lineNo)
			continue
		}

		var err error
		switch kind {
		case "version":
			g.Version = rest
		case "info":
			key, value, _ := strings.Cut(rest, ",")
			g.Info = append(g.Info, Info{Key: key, Value: value})
		case "start":
			var pl Player
			if pl, err = parsePlayer(rest); err == nil {
				g.Starters = append(g.Starters, pl)
			}
		case "sub":
			var pl Player
			if pl, err = parsePlayer(rest); err == nil {
				g.Inserts = append(g.Inserts, Insert{Before: len(g.Plays), Kind: kind, Sub: &pl})
			}
		case "play":
			var pl Play
			if pl, err = parsePlay(rest); err == nil {
				g.Plays = append(g.Plays, pl)
				if pl.OriginalCount == count.Unknown {
					g.Recount(len(g.Plays) - 1)
				}
			}
		case "data":
			g.Data = append(g.Data, Data{Raw: rest})
		default:
			g.Inserts = append(g.Inserts, Insert{Before: len(g.Plays), Kind: kind, Raw: rest})
		}
		if err != nil {
			f.Skipped = append(f.Skipped, lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading event file: %w", err)
	}
	if len(f.Games) == 0 {
		return nil, ErrNoGames
	}
	for _, g := range f.Games {
		if g.Version == "" {
			g.Version = defaultVersion
		}
	}
	return f, nil
}

// parsePlay reads "inning,team,batter,count,pitches,result".
func parsePlay(rest string) (Play, error) {
	fields := strings.SplitN(rest, ",", 6)
	if len(fields) < 6 {
		return Play{}, fmt.Errorf("play record has %d fields, want 6", len(fields))
	}
	inning, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Play{}, fmt.Errorf("play inning: %w", err)
	}
	team, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || (team != int(Visitors) && team != int(HomeTeam)) {
		return Play{}, fmt.Errorf("play team %q", fields[1])
	}
	return Play{
		Inning:        inning,
		Team:          Team(team),
		Batter:        fields[2],
		Count:         fields[3],
		OriginalCount: fields[3],
		Pitches:       fields[4],
		Result:        fields[5],
	}, nil
}

// parsePlayer reads `id,"name",team,order,position`.
func parsePlayer(rest string) (Player, error) {
	r := csv.NewReader(strings.NewReader(rest))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return Player{}, fmt.Errorf("player record: %w", err)
	}
	if len(fields) < 5 {
		return Player{}, fmt.Errorf("player record has %d fields, want 5", len(fields))
	}
	nums := make([]int, 3)
	for i, s := range fields[2:5] {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return Player{}, fmt.Errorf("player record field %d: %w", i+3, err)
		}
		nums[i] = n
	}
	return Player{ID: fields[0], Name: fields[1], Team: Team(nums[0]), Order: nums[1], Position: nums[2]}, nil
}
