package retrosheet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EventRenderer serializes games back to bytes.
type EventRenderer interface {
	Render(games ...*Game) ([]byte, error)
}

// TextRenderer writes the Retrosheet event format.
//
// Record order per game: id, version, info, start, then the plays with their
// substitutions, comments and adjustments in place, then data records.
type TextRenderer struct{}

func (r *TextRenderer) Render(games ...*Game) ([]byte, error) {
	var sb strings.Builder
	for _, g := range games {
		writeGame(&sb, g)
	}
	return []byte(sb.String()), nil
}

func writeGame(sb *strings.Builder, g *Game) {
	fmt.Fprintf(sb, "id,%s\n", g.ID)
	version := g.Version
	if version == "" {
		version = defaultVersion
	}
	fmt.Fprintf(sb, "version,%s\n", version)
	for _, in := range g.Info {
		fmt.Fprintf(sb, "info,%s,%s\n", in.Key, in.Value)
	}
	for _, p := range g.Starters {
		fmt.Fprintf(sb, "start,%s\n", formatPlayer(p))
	}

	next := 0
	flush := func(upTo int) {
		for next < len(g.Inserts) && g.Inserts[next].Before <= upTo {
			writeInsert(sb, g.Inserts[next])
			next++
		}
	}
	for i := range g.Plays {
		flush(i)
		p := &g.Plays[i]
		fmt.Fprintf(sb, "play,%d,%d,%s,%s,%s,%s\n",
			p.Inning, int(p.Team), p.Batter, p.WrittenCount(), p.Pitches, p.Result)
	}
	flush(len(g.Plays))

	for _, d := range g.Data {
		fmt.Fprintf(sb, "data,%s\n", d.Raw)
	}
}

func writeInsert(sb *strings.Builder, in Insert) {
	if in.Kind == "sub" && in.Sub != nil {
		fmt.Fprintf(sb, "sub,%s\n", formatPlayer(*in.Sub))
		return
	}
	fmt.Fprintf(sb, "%s,%s\n", in.Kind, in.Raw)
}

func formatPlayer(p Player) string {
	return strings.Join([]string{
		p.ID,
		strconv.Quote(p.Name),
		strconv.Itoa(int(p.Team)),
		strconv.Itoa(p.Order),
		strconv.Itoa(p.Position),
	}, ",")
}

// JSONRenderer renders games as indented JSON for other tooling.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(games ...*Game) ([]byte, error) {
	return json.MarshalIndent(games, "", "  ")
}
