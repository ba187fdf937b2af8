package editor

// MaxUndo is how many changes can be undone.
const MaxUndo = 10

// UndoEntry is the state of one play before a change.
type UndoEntry struct {
	Game    int
	AtBat   int
	Pitches string
	Result  string
}

// UndoLog is a bounded stack of UndoEntry; the oldest entry is dropped once
// Max is exceeded.
type UndoLog struct {
	Max     int
	entries []UndoEntry
}

// Push records e.
func (l *UndoLog) Push(e UndoEntry) {
	l.entries = append(l.entries, e)
	if l.Max > 0 && len(l.entries) > l.Max {
		l.entries = l.entries[len(l.entries)-l.Max:]
	}
}

// Pop removes and returns the most recent entry.
func (l *UndoLog) Pop() (UndoEntry, bool) {
	if len(l.entries) == 0 {
		return UndoEntry{}, false
	}
	e := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return e, true
}

// Len returns the number of entries.
func (l *UndoLog) Len() int { return len(l.entries) }

func (s *Session) snapshot() {
	rec := s.Current()
	s.undo.Push(UndoEntry{Game: s.game, AtBat: s.atBat, Pitches: rec.Pitches, Result: rec.Result})
}

// Undo restores the play touched by the most recent change. The restored play
// is treated as unedited.
func (s *Session) Undo() {
	s.hint = ""
	e, ok := s.undo.Pop()
	if !ok {
		s.hint = "nothing to undo"
		return
	}
	g := s.games[e.Game]
	rec := &g.Plays[e.AtBat]
	rec.Pitches = e.Pitches
	rec.Result = e.Result
	rec.Edited = false
	g.Recount(e.AtBat)
	s.persistGame(e.Game)
	s.log.Info("undo", "session", s.ID, "game", g.ID, "atbat", e.AtBat)
	if s.hint == "" {
		s.hint = "undone"
	}
}
