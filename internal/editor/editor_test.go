package editor_test

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/fakeyudi/retrobuddy/internal/editor"
	"github.com/fakeyudi/retrobuddy/internal/retrosheet"
)

// memSaver counts saves and can be told to fail.
type memSaver struct {
	saves int
	err   error
}

func (m *memSaver) Save(*retrosheet.Game) error {
	m.saves++
	return m.err
}

// newGame builds a game whose plays are all different batters in the top of
// the first, so every play starts from 0-0.
func newGame(id string, plays ...retrosheet.Play) *retrosheet.Game {
	g := &retrosheet.Game{ID: id, Version: "2"}
	for i, p := range plays {
		if p.Batter == "" {
			p.Batter = "batr" + string(rune('a'+i)) + "001"
		}
		if p.Inning == 0 {
			p.Inning = 1
		}
		if p.OriginalCount == "" {
			p.OriginalCount = "00"
		}
		g.Plays = append(g.Plays, p)
		g.Recount(i)
	}
	return g
}

func newSession(t *testing.T, games ...*retrosheet.Game) (*editor.Session, *memSaver) {
	t.Helper()
	saver := &memSaver{}
	s, err := editor.New(games, saver, editor.WithID("test"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, saver
}

func press(s *editor.Session, keys ...string) {
	for _, k := range keys {
		s.HandleKey(k)
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := editor.New(nil, nil); !errors.Is(err, editor.ErrNoGames) {
		t.Errorf("New(nil) error = %v, want ErrNoGames", err)
	}
}

func TestPitchEntryDerivesCount(t *testing.T) {
	s, saver := newSession(t, newGame("G1", retrosheet.Play{}, retrosheet.Play{}))
	press(s, "b", "b", "f", "b")

	rec := s.Current()
	if rec.Pitches != "BBFB" || rec.Count != "31" {
		t.Errorf("pitches/count = %q/%q, want BBFB/31", rec.Pitches, rec.Count)
	}
	if !rec.Edited {
		t.Error("play not marked edited")
	}
	if s.Mode() != editor.Pitch {
		t.Errorf("mode = %v, want PITCH", s.Mode())
	}
	if saver.saves != 4 {
		t.Errorf("saves = %d, want one per pitch", saver.saves)
	}
}

// Feature: retrobuddy, Property 7: a walk is recorded and the cursor advances exactly once
func TestWalkAdvancesOnce(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{}, retrosheet.Play{}, retrosheet.Play{}))
	press(s, "b", "b", "b", "b")

	g := s.Game()
	if g.Plays[0].Result != "W" {
		t.Errorf("result = %q, want W", g.Plays[0].Result)
	}
	if s.AtBatIndex() != 1 {
		t.Errorf("at-bat = %d, want 1", s.AtBatIndex())
	}
	// A fifth ball lands on the next batter, not the walked one.
	press(s, "b")
	if g.Plays[0].Pitches != "BBBB" || g.Plays[1].Pitches != "B" {
		t.Errorf("pitches = %q, %q", g.Plays[0].Pitches, g.Plays[1].Pitches)
	}
}

func TestWalkOnLastPlayStays(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{}))
	press(s, "b", "b", "b", "b")
	if s.AtBatIndex() != 0 || s.Current().Result != "W" {
		t.Errorf("at-bat %d result %q", s.AtBatIndex(), s.Current().Result)
	}
	if !strings.Contains(s.Hint(), "last play") {
		t.Errorf("hint = %q", s.Hint())
	}
}

func TestStrikeoutKeepsSuffix(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{Pitches: "SS"}, retrosheet.Play{}))
	if s.Mode() != editor.Result {
		t.Fatalf("mode = %v, want RESULT for a play with pitches and no result", s.Mode())
	}
	press(s, "tab", "tab") // back to PITCH
	press(s, "v", "1", "2", "enter")
	rec := s.Current()
	if rec.Pitches != "SS." || rec.Result != "+WP.1-2" {
		t.Fatalf("after wild pitch: %q %q", rec.Pitches, rec.Result)
	}
	if s.Mode() != editor.Pitch {
		t.Fatalf("mode = %v, want PITCH", s.Mode())
	}

	press(s, "s")
	if rec.Result != "K+WP.1-2" || rec.Count != "02" {
		t.Errorf("result/count = %q/%q, want K+WP.1-2/02", rec.Result, rec.Count)
	}
	if s.AtBatIndex() != 0 {
		t.Error("strikeout must not advance")
	}
}

func TestFoulsNeverStrikeOut(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{}))
	press(s, "c", "c", "f", "f", "f")
	if s.Current().Result != "" || s.Current().Count != "02" {
		t.Errorf("result/count = %q/%q", s.Current().Result, s.Current().Count)
	}
}

func TestPickoffThrowPitch(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{}))
	press(s, "k", "1", "b")
	if got := s.Current().Pitches; got != "1B" {
		t.Errorf("pitches = %q, want 1B", got)
	}
	// A non-base key cancels the wait and is handled normally.
	press(s, "k", "c")
	if got := s.Current().Pitches; got != "1BC" {
		t.Errorf("pitches = %q, want 1BC", got)
	}
	if s.AwaitingPickoffBase() {
		t.Error("still awaiting pickoff base")
	}
}

func TestBallInPlayKey(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{}))
	press(s, "c", ".")
	if s.Current().Pitches != "CX" || s.Mode() != editor.Result {
		t.Errorf("pitches %q mode %v", s.Current().Pitches, s.Mode())
	}
	press(s, "tab", "tab", ".")
	if s.Current().Pitches != "CX" {
		t.Errorf("X appended twice: %q", s.Current().Pitches)
	}
}

func TestResultBuilders(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		want     string
		wantMode editor.Mode
	}{
		{"single", []string{"1", "g", "6"}, "S6/G", editor.Detail},
		{"home run", []string{"4", "f", "enter"}, "HR/F", editor.Detail},
		{"out", []string{"o", "g", "6", "enter"}, "6/G", editor.Detail},
		{"double play", []string{"o", "w", "6", "4", "3", "enter"}, "643/G/GDP", editor.Detail},
		{"strikeout out", []string{"o", "k", "enter"}, "K", editor.Detail},
		{"pickoff", []string{"p", "2", "1", "4", "enter"}, "PO2(14)", editor.Pitch},
		{"pickoff error", []string{"p", "1", "e", "3", "enter"}, "PO1(E3)", editor.Pitch},
		{"caught stealing", []string{"t", "2", "2", "6", "enter"}, "CS2(26)", editor.Pitch},
		{"balk", []string{"b", "3", "4", "1", "2", "enter"}, "BK.3-H;1-2", editor.Pitch},
		{"stolen bases", []string{"s", "4", "2", "enter"}, "SB2;SBH", editor.Pitch},
		{"out advancing", []string{"0", "1", "x", "2", "6", "4", "enter", "enter"}, "OA.1X2(64)", editor.Pitch},
		{"walk", []string{"l"}, "W", editor.Result},
		{"catcher interference", []string{"9"}, "C/E2", editor.Result},
		{"no play", []string{";"}, "NP", editor.Result},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t, newGame("G1", retrosheet.Play{Pitches: "CB"}))
			press(s, tt.keys...)
			if got := s.Current().Result; got != tt.want {
				t.Errorf("result = %q, want %q (hint %q)", got, tt.want, s.Hint())
			}
			if s.Mode() != tt.wantMode {
				t.Errorf("mode = %v, want %v", s.Mode(), tt.wantMode)
			}
		})
	}
}

func TestBuilderRefusesIncompleteCommit(t *testing.T) {
	s, saver := newSession(t, newGame("G1", retrosheet.Play{Pitches: "CB"}))
	before := saver.saves
	press(s, "o", "g", "enter")
	if s.Current().Result != "" {
		t.Errorf("result = %q, want empty", s.Current().Result)
	}
	if s.Hint() == "" {
		t.Error("expected a hint")
	}
	if saver.saves != before {
		t.Error("refused commit was persisted")
	}
}

func TestCommitMarksBallInPlay(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{Pitches: "CB"}))
	press(s, "o", "g", "6", "enter")
	if s.Current().Pitches != "CBX" {
		t.Errorf("pitches = %q, want CBX", s.Current().Pitches)
	}
	b, ok := s.Builder().(*editor.ModifierBuilder)
	if !ok || !b.Locating() {
		t.Fatalf("builder = %T, want a locating ModifierBuilder", s.Builder())
	}
}

func TestModifierFlow(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{Pitches: "CB"}))
	press(s, "1", "g", "6")
	press(s, "8", "9", "d", "enter")
	rec := s.Current()
	if rec.Result != "S6/G689D" {
		t.Fatalf("after location: %q", rec.Result)
	}
	press(s, "a", "a", "0", "e", "a", "5")
	if rec.Result != "S6/G689D/AP/E5" {
		t.Fatalf("after modifiers: %q", rec.Result)
	}
	press(s, "0", "r", "1", "3", "2", "2", "enter")
	if rec.Result != "S6/G689D/AP/E5.1-3;2-2" {
		t.Fatalf("after advances: %q", rec.Result)
	}
	press(s, "enter")
	if s.Mode() != editor.Pitch {
		t.Errorf("mode = %v, want PITCH", s.Mode())
	}
}

func TestLocationMarkerValidation(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{Pitches: "X"}))
	press(s, "2", "l", "enter", "8")
	press(s, "m")
	if s.Hint() == "" {
		t.Error("M on position 8 should be refused")
	}
	press(s, "enter")
	if got := s.Current().Result; got != "D/L8" {
		t.Errorf("result = %q, want D/L8", got)
	}
}

func TestSacrificeOpensAdvances(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{Pitches: "B"}))
	press(s, "f", "f", "8")
	b, ok := s.Builder().(*editor.ModifierBuilder)
	if !ok || !b.Advancing() {
		t.Fatalf("builder = %T, want an advancing ModifierBuilder", s.Builder())
	}
	press(s, "3", "4", "enter")
	if got := s.Current().Result; got != "SF8/F.3-H" {
		t.Errorf("result = %q, want SF8/F.3-H", got)
	}
}

func TestBatterAdvanceAfterStrikeout(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{Pitches: "SSS", Result: "K"}))
	press(s, "tab") // PITCH -> RESULT
	press(s, "w", "b", "1", "enter")
	if got := s.Current().Result; got != "K+WP.B-1" {
		t.Errorf("result = %q, want K+WP.B-1", got)
	}
}

func TestClear(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{Pitches: "BCX", Result: "S8/G"}))
	s.ClearResult()
	if s.Current().Result != "" {
		t.Errorf("result = %q", s.Current().Result)
	}
	s.ClearPitches()
	if s.Current().Pitches != "" || s.Current().Count != "00" {
		t.Errorf("pitches/count = %q/%q", s.Current().Pitches, s.Current().Count)
	}
	s.Undo()
	s.Undo()
	if s.Current().Pitches != "BCX" || s.Current().Result != "S8/G" {
		t.Errorf("after undo: %q %q", s.Current().Pitches, s.Current().Result)
	}
	if s.Current().Edited {
		t.Error("undone play should be unedited")
	}
}

// Feature: retrobuddy, Property 8: undo restores the state before each change
func TestUndoInverse(t *testing.T) {
	keys := []string{"b", "s", "c", "f", "t", "h", "."}
	rapid.Check(t, func(t *rapid.T) {
		plays := make([]retrosheet.Play, 12)
		g := newGame("G1", plays...)
		before := make([]retrosheet.Play, len(g.Plays))
		copy(before, g.Plays)

		s, err := editor.New([]*retrosheet.Game{g}, &memSaver{})
		if err != nil {
			t.Fatal(err)
		}
		n := rapid.IntRange(0, editor.MaxUndo).Draw(t, "n")
		changes := 0
		for i := 0; i < n; i++ {
			k := rapid.SampledFrom(keys).Draw(t, "key")
			for s.Mode() != editor.Pitch {
				s.HandleKey("tab")
			}
			s.HandleKey(k)
			changes++
		}
		for i := 0; i < changes; i++ {
			s.Undo()
		}
		for i := range g.Plays {
			got, want := g.Plays[i], before[i]
			if got.Pitches != want.Pitches || got.Result != want.Result || got.Count != want.Count {
				t.Fatalf("play %d = %+v, want %+v", i, got, want)
			}
		}
	})
}

func TestUndoIsBounded(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{}))
	for i := 0; i < editor.MaxUndo+2; i++ {
		s.HandleKey("u")
	}
	for i := 0; i < editor.MaxUndo; i++ {
		s.Undo()
	}
	if got := s.Current().Pitches; got != "UU" {
		t.Errorf("pitches = %q, want the two oldest changes kept", got)
	}
	s.Undo()
	if s.Hint() != "nothing to undo" {
		t.Errorf("hint = %q", s.Hint())
	}
}

func TestUndoDoesNotMoveCursor(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{}, retrosheet.Play{}))
	press(s, "b")
	s.NextAtBat()
	s.Undo()
	if s.AtBatIndex() != 1 {
		t.Errorf("at-bat = %d, want 1", s.AtBatIndex())
	}
	if s.Game().Plays[0].Pitches != "" {
		t.Errorf("play 0 pitches = %q", s.Game().Plays[0].Pitches)
	}
}

func TestAutoSetMode(t *testing.T) {
	tests := []struct {
		play  retrosheet.Play
		prior editor.Mode
		want  editor.Mode
	}{
		{retrosheet.Play{}, editor.Detail, editor.Pitch},
		{retrosheet.Play{Pitches: "B"}, editor.Pitch, editor.Result},
		{retrosheet.Play{Pitches: "BX", Result: "S8/G"}, editor.Detail, editor.Detail},
		{retrosheet.Play{Pitches: "BX", Result: "S8/G"}, editor.Result, editor.Result},
	}
	for _, tt := range tests {
		if got := editor.AutoSetMode(tt.prior, &tt.play); got != tt.want {
			t.Errorf("AutoSetMode(%v, %+v) = %v, want %v", tt.prior, tt.play, got, tt.want)
		}
	}
}

func TestNavigation(t *testing.T) {
	done := retrosheet.Play{Pitches: "X", Result: "S8/G"}
	unknown := retrosheet.Play{Pitches: "X", Result: "63/G", OriginalCount: "??"}
	s, _ := newSession(t, newGame("G1", done, done, retrosheet.Play{Pitches: "B"}, unknown))

	if s.PreviousAtBat() {
		t.Error("PreviousAtBat at start should report false")
	}
	if !s.JumpToIncomplete() || s.AtBatIndex() != 2 || s.Mode() != editor.Result {
		t.Fatalf("jump landed on %d in %v", s.AtBatIndex(), s.Mode())
	}
	if !s.JumpToIncomplete() || s.AtBatIndex() != 3 {
		t.Fatalf("second jump landed on %d", s.AtBatIndex())
	}
	if !s.JumpToIncomplete() || s.AtBatIndex() != 2 {
		t.Fatalf("wrapped jump landed on %d", s.AtBatIndex())
	}
	if s.NextAtBat(); s.AtBatIndex() != 3 {
		t.Fatalf("at-bat = %d", s.AtBatIndex())
	}
	if s.NextAtBat() {
		t.Error("NextAtBat at end should report false")
	}
	if s.JumpTo(9) || s.Hint() == "" {
		t.Error("JumpTo out of range should fail with a hint")
	}
	if !s.JumpTo(0) || s.AtBatIndex() != 0 {
		t.Error("JumpTo(0) failed")
	}
}

func TestJumpToIncompleteAllDone(t *testing.T) {
	done := retrosheet.Play{Pitches: "X", Result: "S8/G"}
	s, _ := newSession(t, newGame("G1", done, done))
	if s.JumpToIncomplete() {
		t.Error("expected no incomplete play")
	}
	if s.AtBatIndex() != 0 {
		t.Errorf("cursor moved to %d", s.AtBatIndex())
	}
}

func TestNavigationResetsBuilder(t *testing.T) {
	done := retrosheet.Play{Pitches: "X", Result: "S8/G"}
	s, _ := newSession(t, newGame("G1", retrosheet.Play{Pitches: "B"}, done))
	press(s, "o", "g")
	if _, ok := s.Builder().(*editor.OutBuilder); !ok {
		t.Fatalf("builder = %T", s.Builder())
	}
	s.NextAtBat()
	if s.Mode() != editor.Detail {
		t.Fatalf("mode = %v", s.Mode())
	}
	if _, ok := s.Builder().(*editor.ModifierBuilder); !ok {
		t.Errorf("builder = %T, want a fresh ModifierBuilder", s.Builder())
	}
}

func TestGameSwitching(t *testing.T) {
	s, _ := newSession(t,
		newGame("G1", retrosheet.Play{}, retrosheet.Play{}),
		newGame("G2", retrosheet.Play{}))
	s.NextAtBat()
	if !s.NextGame() || s.Game().ID != "G2" || s.AtBatIndex() != 0 {
		t.Fatalf("game %s at-bat %d", s.Game().ID, s.AtBatIndex())
	}
	if s.NextGame() {
		t.Error("NextGame past the end should report false")
	}
	press(s, "b")
	s.PreviousGame()
	s.Undo()
	if s.Games()[1].Plays[0].Pitches != "" {
		t.Error("undo should restore the game it recorded")
	}
	if !s.SelectGame("G2") || s.GameIndex() != 1 {
		t.Error("SelectGame failed")
	}
}

func TestRestoreClamps(t *testing.T) {
	s, _ := newSession(t, newGame("G1", retrosheet.Play{}, retrosheet.Play{Pitches: "B"}))
	s.Restore(5, 99, editor.Detail)
	if s.GameIndex() != 0 || s.AtBatIndex() != 1 || s.Mode() != editor.Result {
		t.Errorf("restored to game %d at-bat %d mode %v", s.GameIndex(), s.AtBatIndex(), s.Mode())
	}
}

func TestSaveFailureBecomesHint(t *testing.T) {
	saver := &memSaver{err: errors.New("disk full")}
	s, err := editor.New([]*retrosheet.Game{newGame("G1", retrosheet.Play{})}, saver)
	if err != nil {
		t.Fatal(err)
	}
	press(s, "b")
	if !strings.Contains(s.Hint(), "disk full") {
		t.Errorf("hint = %q", s.Hint())
	}
	if s.Current().Pitches != "B" {
		t.Error("in-memory edit should survive a failed save")
	}
}

func TestKeyTablesHaveNoConflicts(t *testing.T) {
	if c := editor.ValidateKeyTables(); len(c) != 0 {
		t.Errorf("conflicts: %v", c)
	}
}
