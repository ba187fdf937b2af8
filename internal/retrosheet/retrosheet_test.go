package retrosheet_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"pgregory.net/rapid"

	"github.com/fakeyudi/retrobuddy/internal/retrosheet"
)

const sampleGame = `id,ANA202404010
version,2
info,visteam,BOS
info,hometeam,ANA
info,date,2024/04/01
info,site,"ANA01"
start,bettm001,"Mookie Betts",0,1,8
start,trouM001,"Mike Trout",1,3,8
play,1,0,bettm001,12,CBFX,S8/L
play,1,0,devea001,??,BBS,
com,"pitching change, warming up"
sub,smitj001,"John Smith",1,0,1
play,1,0,devea001,??,,
play,1,1,trouM001,32,BCFBBX,HR/F7
padj,trouM001,L
play,2,0,bettm001,00,,NP
data,er,smitj001,1
`

// diffText returns a unified diff between want and got for failure messages.
func diffText(want, got string) string {
	d, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  3,
	})
	return d
}

func TestUneditedGameRoundTrips(t *testing.T) {
	f, err := (&retrosheet.Parser{}).Parse([]byte(sampleGame))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := (&retrosheet.TextRenderer{}).Render(f.Games...)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != sampleGame {
		t.Errorf("round-trip mismatch:\n%s", diffText(sampleGame, string(out)))
	}
}

func TestParsePopulatesPlays(t *testing.T) {
	f, err := (&retrosheet.Parser{}).Parse([]byte(sampleGame))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g := f.Games[0]
	if len(g.Plays) != 5 {
		t.Fatalf("got %d plays, want 5", len(g.Plays))
	}
	first := g.Plays[0]
	if first.Count != "12" || first.OriginalCount != "12" || first.Pitches != "CBFX" || first.Result != "S8/L" || first.Edited {
		t.Errorf("first play = %+v", first)
	}
	unknown := g.Plays[1]
	if unknown.OriginalCount != "??" {
		t.Errorf("original count = %q, want ??", unknown.OriginalCount)
	}
	if unknown.Count != "21" {
		t.Errorf("working count = %q, want 21 derived from BBS", unknown.Count)
	}
	// Same batter again: inherits the prior play's count.
	if g.Plays[2].Count != "21" {
		t.Errorf("continued plate appearance count = %q, want 21", g.Plays[2].Count)
	}
	if subs := g.Substitutions(); len(subs) != 1 || subs[0].Sub.Name != "John Smith" || subs[0].Before != 2 {
		t.Errorf("substitutions = %+v", subs)
	}
	if coms := g.Comments(); len(coms) != 1 || coms[0].Raw != `"pitching change, warming up"` {
		t.Errorf("comments = %+v", coms)
	}
	if v, ok := g.InfoValue("site"); !ok || v != "ANA01" {
		t.Errorf("site = %q, %v", v, ok)
	}
	if g.Version != "2" {
		t.Errorf("version = %q, want 2", g.Version)
	}
}

func TestUnknownCountWriteRule(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(p *retrosheet.Play)
		expect string
	}{
		{"unedited", func(p *retrosheet.Play) {}, "??"},
		{"edited without result", func(p *retrosheet.Play) {
			p.Pitches = "BB"
			p.Count = "20"
			p.Edited = true
		}, "??"},
		{"edited with result", func(p *retrosheet.Play) {
			p.Pitches = "BBX"
			p.Count = "20"
			p.Result = "S6/G"
			p.Edited = true
		}, "20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := retrosheet.Play{OriginalCount: "??", Count: "00"}
			tt.edit(&p)
			if got := p.WrittenCount(); got != tt.expect {
				t.Errorf("WrittenCount() = %q, want %q", got, tt.expect)
			}
		})
	}

	known := retrosheet.Play{OriginalCount: "12", Count: "22", Edited: true}
	if got := known.WrittenCount(); got != "22" {
		t.Errorf("edited known count = %q, want 22", got)
	}
	known.Edited = false
	if got := known.WrittenCount(); got != "12" {
		t.Errorf("unedited known count = %q, want 12", got)
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	input := "junk,before,id\nid,X\nplay,1,0,abc\nplay,one,0,abc,00,B,\nplay,1,0,abc,00,B,\n"
	f, err := (&retrosheet.Parser{}).Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Games[0].Plays) != 1 {
		t.Errorf("got %d plays, want 1", len(f.Games[0].Plays))
	}
	if len(f.Skipped) != 3 {
		t.Errorf("skipped = %v, want 3 lines", f.Skipped)
	}
	if f.Games[0].Version != "1" {
		t.Errorf("default version = %q, want 1", f.Games[0].Version)
	}
}

func TestParseNoGames(t *testing.T) {
	_, err := (&retrosheet.Parser{}).Parse([]byte("info,foo,bar\n"))
	if !errors.Is(err, retrosheet.ErrNoGames) {
		t.Errorf("err = %v, want ErrNoGames", err)
	}
}

func TestJSONRenderer(t *testing.T) {
	f, err := (&retrosheet.Parser{}).Parse([]byte(sampleGame))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := (&retrosheet.JSONRenderer{}).Render(f.Games...)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{`"id": "ANA202404010"`, `"original_count": "??"`, `"result": "HR/F7"`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("JSON output missing %s", want)
		}
	}
}

// Feature: retrobuddy, Property 6: Writing then parsing preserves every play
func TestPlayRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "plays")
		g := &retrosheet.Game{ID: "TST202401010", Version: "1"}
		for i := 0; i < n; i++ {
			g.Plays = append(g.Plays, retrosheet.Play{
				Inning:        rapid.IntRange(1, 12).Draw(t, "inning"),
				Team:          retrosheet.Team(rapid.IntRange(0, 1).Draw(t, "team")),
				Batter:        rapid.StringMatching(`[a-z]{4}[0-9]{3}`).Draw(t, "batter"),
				OriginalCount: rapid.StringMatching(`[0-3][0-2]`).Draw(t, "count"),
				Pitches:       rapid.StringMatching(`[BSCFTX.]{0,8}`).Draw(t, "pitches"),
				Result:        rapid.StringMatching(`(S[1-9]/G|[1-9]{1,3}/F|K|W|)`).Draw(t, "result"),
			})
		}
		out, err := (&retrosheet.TextRenderer{}).Render(g)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		f, err := (&retrosheet.Parser{}).Parse(out)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		got := f.Games[0].Plays
		if len(got) != n {
			t.Fatalf("got %d plays, want %d", len(got), n)
		}
		for i := range got {
			want := g.Plays[i]
			want.Count = want.OriginalCount
			if got[i] != want {
				t.Fatalf("play %d = %+v, want %+v", i, got[i], want)
			}
		}
	})
}

func TestGameStoreSaveLoadResume(t *testing.T) {
	dir := t.TempDir()
	store, err := retrosheet.NewGameStore(dir, "scorer")
	if err != nil {
		t.Fatalf("NewGameStore: %v", err)
	}
	f, err := (&retrosheet.Parser{}).Parse([]byte(sampleGame))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g := f.Games[0]
	g.Plays[1].Result = "S6/G"
	g.Plays[1].Edited = true

	if err := store.Save(g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first, err := os.ReadFile(store.Path(g.ID))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := store.Save(g); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	second, _ := os.ReadFile(store.Path(g.ID))
	if string(first) != string(second) {
		t.Errorf("Save is not idempotent:\n%s", diffText(string(first), string(second)))
	}
	if !strings.Contains(string(first), "info,inputter,scorer\n") {
		t.Error("inputter info not recorded")
	}
	if !strings.Contains(string(first), "play,1,0,devea001,21,BBS,S6/G\n") {
		t.Errorf("edited play not written with computed count:\n%s", first)
	}

	fresh, err := (&retrosheet.Parser{}).Parse([]byte(sampleGame))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	resumed, err := store.Resume(fresh)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if len(resumed) != 1 || fresh.Games[0].Plays[1].Result != "S6/G" {
		t.Errorf("Resume did not load the saved game: %v %+v", resumed, fresh.Games[0].Plays[1])
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestGameStoreLoadMissing(t *testing.T) {
	store, err := retrosheet.NewGameStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewGameStore: %v", err)
	}
	if _, err := store.Load("NOPE"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestFileSelect(t *testing.T) {
	f := &retrosheet.File{Games: []*retrosheet.Game{{ID: "A"}, {ID: "B"}, {ID: "C"}}}

	all, err := f.Select()
	if err != nil || len(all) != 3 {
		t.Fatalf("Select() = %d games, %v", len(all), err)
	}
	got, err := f.Select("C", "A")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 2 || got[0].ID != "A" || got[1].ID != "C" {
		t.Errorf("Select kept file order wrong: %v, %v", got[0].ID, got[1].ID)
	}
	if _, err := f.Select("Z"); !errors.Is(err, retrosheet.ErrUnknownGame) {
		t.Errorf("Select(Z) error = %v, want ErrUnknownGame", err)
	}
}
