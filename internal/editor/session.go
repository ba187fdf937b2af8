// Package editor is the modal key interpreter behind the play editor.
//
// A Session owns the games being edited, the cursor (game and play), the
// current mode and, in DETAIL mode, the active Builder. Every key is handled
// to completion, including persisting the touched game, before the next one.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fakeyudi/retrobuddy/internal/count"
	"github.com/fakeyudi/retrobuddy/internal/playcode"
	"github.com/fakeyudi/retrobuddy/internal/retrosheet"
)

// ErrNoGames is returned by New when there is nothing to edit.
var ErrNoGames = errors.New("no games to edit")

// Mode is the top-level input mode.
type Mode int

const (
	Pitch Mode = iota
	Result
	Detail
)

func (m Mode) String() string {
	switch m {
	case Result:
		return "RESULT"
	case Detail:
		return "DETAIL"
	}
	return "PITCH"
}

// ParseMode is the inverse of Mode.String. Unknown names give Pitch.
func ParseMode(s string) Mode {
	switch s {
	case "RESULT":
		return Result
	case "DETAIL":
		return Detail
	}
	return Pitch
}

// Saver persists a game after every change. It must be idempotent.
type Saver interface {
	Save(g *retrosheet.Game) error
}

// Session is one editing run over a set of games.
type Session struct {
	ID string

	games   []*retrosheet.Game
	game    int
	atBat   int
	mode    Mode
	builder Builder
	// awaitingPickoffBase is set after the pickoff-throw key until a base is pressed.
	awaitingPickoffBase bool

	undo  UndoLog
	saver Saver
	log   *slog.Logger
	hint  string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for commits and persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// New starts a session on the first play of the first game.
func New(games []*retrosheet.Game, saver Saver, opts ...Option) (*Session, error) {
	if len(games) == 0 {
		return nil, ErrNoGames
	}
	s := &Session{
		ID:    uuid.NewString(),
		games: games,
		saver: saver,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		undo:  UndoLog{Max: MaxUndo},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mode = AutoSetMode(Pitch, s.Current())
	if s.mode == Detail {
		s.builder = newModifierBuilder(toPitch)
	}
	return s, nil
}

// ── Accessors ─────────────────

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Builder returns the active builder, or nil outside DETAIL or before a
// category is chosen.
func (s *Session) Builder() Builder { return s.builder }

// Games returns every game in the session.
func (s *Session) Games() []*retrosheet.Game { return s.games }

// Game returns the game under the cursor.
func (s *Session) Game() *retrosheet.Game { return s.games[s.game] }

// GameIndex returns the index of the game under the cursor.
func (s *Session) GameIndex() int { return s.game }

// AtBatIndex returns the index of the play under the cursor.
func (s *Session) AtBatIndex() int { return s.atBat }

// Current returns the play under the cursor, or nil when the game has none.
func (s *Session) Current() *retrosheet.Play {
	g := s.Game()
	if s.atBat < 0 || s.atBat >= len(g.Plays) {
		return nil
	}
	return &g.Plays[s.atBat]
}

// Hint returns the advisory message from the last operation, if any.
func (s *Session) Hint() string { return s.hint }

// AwaitingPickoffBase reports whether a pickoff throw is waiting for its base.
func (s *Session) AwaitingPickoffBase() bool { return s.awaitingPickoffBase }

// Tally returns the raw count for the current play.
func (s *Session) Tally() count.Tally {
	rec := s.Current()
	if rec == nil {
		return count.Tally{}
	}
	return count.Derive(rec.Pitches, s.Game().StartingCount(s.atBat))
}

// ── Key dispatch ─────────────────

// HandleKey interprets one key in the current mode. Keys that mean nothing
// in the current context are ignored.
func (s *Session) HandleKey(key string) {
	s.hint = ""
	if s.Current() == nil {
		return
	}
	if key == KeyTab {
		s.cycleMode()
		return
	}
	switch s.mode {
	case Pitch:
		s.handlePitch(key)
	case Result:
		s.handleResult(key)
	case Detail:
		s.handleDetail(key)
	}
}

func (s *Session) cycleMode() {
	s.awaitingPickoffBase = false
	switch s.mode {
	case Pitch:
		s.mode = Result
	case Result:
		s.mode = Detail
		s.builder = nil
		if s.Current().Result != "" {
			s.builder = newModifierBuilder(toPitch)
		}
	case Detail:
		s.leaveDetail(Pitch)
	}
}

func (s *Session) leaveDetail(to Mode) {
	s.builder = nil
	s.mode = to
}

func (s *Session) enterDetail(b Builder) {
	s.awaitingPickoffBase = false
	s.mode = Detail
	s.builder = b
}

func (s *Session) handlePitch(key string) {
	if s.awaitingPickoffBase {
		s.awaitingPickoffBase = false
		switch key {
		case "1", "2", "3":
			s.addPitch(key)
			return
		}
	}
	switch key {
	case KeyEnter:
		s.persist()
	case keyPickoffTry:
		s.awaitingPickoffBase = true
		s.hint = "pickoff throw to which base? 1/2/3"
	case keyWildPitch:
		s.runnerEventFromPitch(playcode.WildPitch)
	case keyPassedBall:
		s.runnerEventFromPitch(playcode.PassedBall)
	case keyBallInPlay:
		s.snapshot()
		s.markBallInPlay()
		s.Current().Edited = true
		s.persist()
		s.mode = Result
	default:
		if e, ok := pitchByKey[key]; ok {
			s.addPitch(e.Code)
		}
	}
}

// addPitch appends one pitch code and applies walk and strikeout detection
// when the new pitch crosses four balls or three strikes.
func (s *Session) addPitch(code string) {
	rec := s.Current()
	before := s.Tally()
	s.snapshot()
	rec.Pitches += code
	after := s.Game().Recount(s.atBat)
	rec.Edited = true

	switch {
	case before.RawBalls < 4 && after.Outcome() == count.Walk:
		rec.Result = playcode.WithPrimary(rec.Result, playcode.Walk)
		s.persist()
		s.log.Info("walk", "session", s.ID, "game", s.Game().ID, "atbat", s.atBat)
		if !s.NextAtBat() {
			s.hint = "walk recorded; last play of the game"
		} else {
			s.hint = "walk recorded"
		}
		return
	case before.RawStrikes < 3 && after.RawStrikes >= 3:
		rec.Result = playcode.WithPrimary(rec.Result, playcode.Strikeout)
		s.log.Info("strikeout", "session", s.ID, "game", s.Game().ID, "atbat", s.atBat)
		s.hint = "strikeout recorded"
	}
	s.persist()
}

// runnerEventFromPitch marks the pitch sequence and opens the runner builder
// whose advances will be appended as a suffix.
func (s *Session) runnerEventFromPitch(code string) {
	rec := s.Current()
	s.snapshot()
	rec.Pitches += separatorCode
	s.Game().Recount(s.atBat)
	rec.Edited = true
	s.persist()
	s.enterDetail(&RunnerAdvanceBuilder{
		Code:      code,
		FromPitch: true,
		batterMay: playcode.IsStrikeout(rec.Result),
	})
}

func (s *Session) markBallInPlay() {
	rec := s.Current()
	for _, c := range rec.Pitches {
		if string(c) == ballInPlayCode {
			return
		}
	}
	rec.Pitches += ballInPlayCode
}

func (s *Session) handleResult(key string) {
	if key == KeyEnter {
		s.persist()
		return
	}
	if e, ok := immediateByKey[key]; ok {
		rec := s.Current()
		s.snapshot()
		rec.Result = playcode.WithPrimary(rec.Result, e.Code)
		rec.Edited = true
		s.persist()
		s.log.Debug("result set", "session", s.ID, "game", s.Game().ID, "atbat", s.atBat, "result", rec.Result)
		return
	}
	if e, ok := resultByKey[key]; ok {
		s.enterDetail(newBuilder(e.Code, s.Current().Result))
	}
}

func (s *Session) handleDetail(key string) {
	if s.builder == nil {
		if e, ok := resultByKey[key]; ok {
			s.builder = newBuilder(e.Code, s.Current().Result)
		}
		return
	}
	st := s.builder.feed(key)
	s.hint = st.hint
	switch st.action {
	case stepCommit:
		if c, ok := s.builder.(committer); ok {
			s.commit(c)
		}
	case stepApply:
		s.applyEdit(st.edit)
	case stepFinish:
		s.leaveDetail(Pitch)
	}
}

// commit materializes a builder's result onto the current play.
func (s *Session) commit(c committer) {
	if err := c.ready(); err != nil {
		s.hint = err.Error()
		return
	}
	rec := s.Current()
	res := c.commit(rec.Result)
	s.snapshot()
	rec.Result = res.result
	if res.ballInPlay {
		s.markBallInPlay()
	}
	rec.Edited = true
	s.persist()
	s.log.Info("result committed", "session", s.ID, "game", s.Game().ID, "atbat", s.atBat, "result", rec.Result)

	switch res.then {
	case toPitch:
		s.leaveDetail(Pitch)
	default:
		s.builder = newModifierBuilder(res.then)
	}
}

// applyEdit applies a live modifier edit to the current result.
func (s *Session) applyEdit(edit func(string) string) {
	rec := s.Current()
	if rec.Result == "" {
		s.hint = "no result to modify"
		return
	}
	s.snapshot()
	rec.Result = edit(rec.Result)
	rec.Edited = true
	s.persist()
	s.log.Debug("modifier applied", "session", s.ID, "game", s.Game().ID, "atbat", s.atBat, "result", rec.Result)
}

// ── Clearing ─────────────────

// ClearPitches empties the current pitch sequence.
func (s *Session) ClearPitches() {
	s.hint = ""
	rec := s.Current()
	if rec == nil {
		return
	}
	s.snapshot()
	rec.Pitches = ""
	s.Game().Recount(s.atBat)
	rec.Edited = true
	s.persist()
	s.hint = "pitches cleared"
}

// ClearResult empties the current result and discards any builder state.
func (s *Session) ClearResult() {
	s.hint = ""
	rec := s.Current()
	if rec == nil {
		return
	}
	s.snapshot()
	rec.Result = ""
	rec.Edited = true
	if s.mode == Detail {
		s.builder = nil
	}
	s.persist()
	s.hint = "result cleared"
}

// ── Persistence ─────────────────

func (s *Session) persist() {
	s.persistGame(s.game)
}

func (s *Session) persistGame(i int) {
	if s.saver == nil {
		return
	}
	g := s.games[i]
	if err := s.saver.Save(g); err != nil {
		s.log.Error("save failed", "session", s.ID, "game", g.ID, "error", err)
		s.hint = fmt.Sprintf("save failed: %v", err)
	}
}
