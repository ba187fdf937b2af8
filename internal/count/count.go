// Package count derives ball-strike counts from Retrosheet pitch sequences.
package count

import "fmt"

// Unknown is the count placeholder Retrosheet uses when the count was not recorded.
const Unknown = "??"

// Display caps: a count never shows more than three balls or two strikes.
const (
	maxDisplayBalls   = 3
	maxDisplayStrikes = 2
)

// Walk and strikeout thresholds, applied to raw totals.
const (
	walkBalls      = 4
	strikeoutCount = 3
)

// Count is a ball-strike count.
type Count struct {
	Balls   int
	Strikes int
}

// Zero is the count at the start of a plate appearance.
var Zero = Count{}

// Parse decodes a two-digit count string such as "32".
// Anything else, including Unknown, decodes to Zero.
func Parse(s string) Count {
	if len(s) != 2 {
		return Zero
	}
	b, s2 := s[0], s[1]
	if b < '0' || b > '9' || s2 < '0' || s2 > '9' {
		return Zero
	}
	return Count{Balls: int(b - '0'), Strikes: int(s2 - '0')}
}

// String formats c as two digits, balls first.
func (c Count) String() string {
	return fmt.Sprintf("%d%d", c.Balls, c.Strikes)
}

// Outcome classifies how a pitch sequence ended, if it ended at all.
type Outcome int

const (
	InProgress Outcome = iota
	Walk
	Strikeout
)

func (o Outcome) String() string {
	switch o {
	case Walk:
		return "walk"
	case Strikeout:
		return "strikeout"
	}
	return "in progress"
}

// Tally is the result of walking a pitch sequence.
// Raw totals are uncapped; Display is what gets written to the event file.
type Tally struct {
	RawBalls   int
	RawStrikes int
}

// Display returns the capped count.
func (t Tally) Display() Count {
	return Count{
		Balls:   min(t.RawBalls, maxDisplayBalls),
		Strikes: min(t.RawStrikes, maxDisplayStrikes),
	}
}

// Outcome reports a walk when four balls were reached, otherwise a strikeout
// when three strikes were reached.
func (t Tally) Outcome() Outcome {
	switch {
	case t.RawBalls >= walkBalls:
		return Walk
	case t.RawStrikes >= strikeoutCount:
		return Strikeout
	}
	return InProgress
}

// Derive applies pitches left to right starting from start.
//
// Balls add a ball. Swinging and called strikes add a strike. A foul adds a
// strike only while there are fewer than two; a foul tip always adds one.
// Every other pitch code leaves the count alone.
func Derive(pitches string, start Count) Tally {
	t := Tally{RawBalls: start.Balls, RawStrikes: start.Strikes}
	for _, p := range pitches {
		switch p {
		case 'B':
			t.RawBalls++
		case 'S', 'C':
			t.RawStrikes++
		case 'F':
			if t.RawStrikes < maxDisplayStrikes {
				t.RawStrikes++
			}
		case 'T':
			t.RawStrikes++
		}
	}
	return t
}

// Plate identifies a plate appearance for count inheritance.
type Plate struct {
	Inning int
	Team   int
	Batter string
	Count  string
}

// StartingFor returns the count current starts from. When prior is the same
// batter in the same half-inning, the plate appearance continues and inherits
// prior's count; otherwise it starts at Zero.
func StartingFor(prior *Plate, current Plate) Count {
	if prior == nil {
		return Zero
	}
	if prior.Inning != current.Inning || prior.Team != current.Team || prior.Batter != current.Batter {
		return Zero
	}
	return Parse(prior.Count)
}
