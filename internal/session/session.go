package session

import "time"

// Session is the resumable state of an editing run: which file was open and
// where the cursor was when it last moved.
type Session struct {
	ID         string    `json:"id"`
	InputPath  string    `json:"input_path"` // absolute path of the event file
	GameID     string    `json:"game_id"`
	GameIndex  int       `json:"game_index"`
	AtBatIndex int       `json:"at_bat_index"`
	Mode       string    `json:"mode"` // "PITCH" | "RESULT" | "DETAIL"
	StartTime  time.Time `json:"start_time"`
	UpdatedAt  time.Time `json:"updated_at"`
	// Saved holds the ids of games written to the output directory so far.
	Saved []string `json:"saved,omitempty"`
}

// Matches reports whether s was recorded for the event file at path.
func (s *Session) Matches(path string) bool {
	return s != nil && s.InputPath == path
}

// MarkSaved records a saved game id once.
func (s *Session) MarkSaved(id string) {
	for _, v := range s.Saved {
		if v == id {
			return
		}
	}
	s.Saved = append(s.Saved, id)
}
