package editor

import (
	"fmt"

	"github.com/fakeyudi/retrobuddy/internal/count"
	"github.com/fakeyudi/retrobuddy/internal/retrosheet"
)

// AutoSetMode picks the mode to land in on p: PITCH while there are no
// pitches, RESULT while there is no result, otherwise prior.
func AutoSetMode(prior Mode, p *retrosheet.Play) Mode {
	switch {
	case p == nil || p.Pitches == "":
		return Pitch
	case p.Result == "":
		return Result
	}
	return prior
}

// IsIncomplete reports whether p still needs work.
func IsIncomplete(p *retrosheet.Play) bool {
	return p.OriginalCount == count.Unknown || p.Pitches == "" || p.Result == ""
}

// moveTo places the cursor and picks the landing mode. Builder state never
// survives a move.
func (s *Session) moveTo(game, atBat int) {
	s.game, s.atBat = game, atBat
	s.awaitingPickoffBase = false
	s.builder = nil
	s.mode = AutoSetMode(s.mode, s.Current())
	if s.mode == Detail {
		s.builder = newModifierBuilder(toPitch)
	}
}

// NextAtBat moves to the next play in the game. It reports false at the end.
func (s *Session) NextAtBat() bool {
	if s.atBat+1 >= len(s.Game().Plays) {
		return false
	}
	s.moveTo(s.game, s.atBat+1)
	return true
}

// PreviousAtBat moves to the previous play. It reports false at the start.
func (s *Session) PreviousAtBat() bool {
	if s.atBat <= 0 {
		return false
	}
	s.moveTo(s.game, s.atBat-1)
	return true
}

// JumpToIncomplete moves to the next incomplete play, searching forward from
// the cursor and wrapping around. It reports false when every play is complete.
func (s *Session) JumpToIncomplete() bool {
	s.hint = ""
	plays := s.Game().Plays
	n := len(plays)
	for i := 1; i <= n; i++ {
		j := (s.atBat + i) % n
		if IsIncomplete(&plays[j]) {
			s.moveTo(s.game, j)
			return true
		}
	}
	s.hint = "every play is complete"
	return false
}

// JumpTo moves to play index i of the current game.
func (s *Session) JumpTo(i int) bool {
	s.hint = ""
	if i < 0 || i >= len(s.Game().Plays) {
		s.hint = fmt.Sprintf("no play %d", i+1)
		return false
	}
	s.moveTo(s.game, i)
	return true
}

// NextGame moves to the first play of the next game.
func (s *Session) NextGame() bool {
	if s.game+1 >= len(s.games) {
		return false
	}
	s.moveTo(s.game+1, 0)
	return true
}

// PreviousGame moves to the first play of the previous game.
func (s *Session) PreviousGame() bool {
	if s.game <= 0 {
		return false
	}
	s.moveTo(s.game-1, 0)
	return true
}

// Restore places the cursor at a saved position, clamped to what exists, and
// re-enters mode there when the play allows it.
func (s *Session) Restore(game, atBat int, mode Mode) {
	game = max(0, min(game, len(s.games)-1))
	atBat = max(0, min(atBat, len(s.games[game].Plays)-1))
	s.mode = mode
	s.moveTo(game, atBat)
}

// SelectGame moves to the first play of the game with the given id.
func (s *Session) SelectGame(id string) bool {
	for i, g := range s.games {
		if g.ID == id {
			s.moveTo(i, 0)
			return true
		}
	}
	return false
}
