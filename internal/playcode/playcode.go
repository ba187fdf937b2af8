// Package playcode formats Retrosheet result codes.
//
// Every function here is pure: given a play category and the selections made
// for it, it returns the canonical event string. Callers are responsible for
// only calling a formatter once its required selections are present.
package playcode

import (
	"strconv"
	"strings"
)

// Shape is how a ball was put in play.
type Shape string

const (
	Grounder Shape = "G"
	Liner    Shape = "L"
	Fly      Shape = "F"
	Popup    Shape = "P"
	Bunt     Shape = "B"
)

// Shapes lists every batted-ball shape in display order.
var Shapes = []Shape{Grounder, Liner, Fly, Popup, Bunt}

// IsShape reports whether s is one of the batted-ball shapes.
func IsShape(s string) bool {
	for _, sh := range Shapes {
		if string(sh) == s {
			return true
		}
	}
	return false
}

// Base is a base a runner occupies or reaches. B is the batter.
type Base string

const (
	Batter Base = "B"
	First  Base = "1"
	Second Base = "2"
	Third  Base = "3"
	Home   Base = "H"
)

// BaseFromKey maps a base key to a Base. Both "4" and "h" mean home.
func BaseFromKey(k string) (Base, bool) {
	switch k {
	case "1":
		return First, true
	case "2":
		return Second, true
	case "3":
		return Third, true
	case "4", "h", "H":
		return Home, true
	case "b", "B":
		return Batter, true
	}
	return "", false
}

// Fielders is an ordered chain of defensive positions.
type Fielders []int

// String concatenates the positions, e.g. [6 4 3] -> "643".
func (f Fielders) String() string {
	var sb strings.Builder
	for _, p := range f {
		sb.WriteString(strconv.Itoa(p))
	}
	return sb.String()
}

// Fielder parses a single position key 1-9.
func Fielder(k string) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return 0, false
	}
	return int(k[0] - '0'), true
}

// Batted-ball event codes.
const (
	Single         = "S"
	Double         = "D"
	Triple         = "T"
	HomeRun        = "HR"
	Error          = "E"
	FieldersChoice = "FC"
	SacFly         = "SF"
	SacHit         = "SH"
)

// Hit formats a batted-ball event credited to at most one fielder:
// singles, doubles, triples, errors, fielder's choices and sacrifices.
// A zero fielder is omitted. Home runs never carry a fielder.
func Hit(code string, shape Shape, fielder int) string {
	if code == HomeRun || fielder == 0 {
		return code + "/" + string(shape)
	}
	return code + strconv.Itoa(fielder) + "/" + string(shape)
}

// Out categories. OutGeneric carries no category suffix of its own.
const (
	OutGeneric   = "OUT"
	GroundDP     = "GDP"
	LinedDP      = "LDP"
	TriplePlay   = "TP"
	ForceOut     = "FO"
	Unassisted   = "UO"
	Strikeout    = "K"
	DoublePlay   = "DP"
	OutFielderCh = "FC"
)

// Out formats a fielded out: the fielder chain, then the subtype, then the
// category again when it differs from the subtype, e.g. "643/G/GDP".
// A strikeout subtype produces "K" followed by the chain with no separator.
func Out(category, subtype string, fielders Fielders) string {
	if subtype == Strikeout {
		return Strikeout + fielders.String()
	}
	code := fielders.String() + "/" + subtype
	if category != "" && category != OutGeneric && category != subtype {
		code += "/" + category
	}
	return code
}

// Pickoff and caught-stealing codes.
const (
	PickedOff       = "PO"
	PickoffCaught   = "POCS"
	CaughtStealing  = "CS"
	pickoffErrorTag = "E"
)

// Pickoff formats "PO{base}({fielders})".
func Pickoff(base Base, fielders Fielders) string {
	return PickedOff + string(base) + "(" + fielders.String() + ")"
}

// PickoffError formats a pickoff attempt that ended in an error, "PO{base}(E{fielder})".
func PickoffError(base Base, fielder int) string {
	return PickedOff + string(base) + "(" + pickoffErrorTag + strconv.Itoa(fielder) + ")"
}

// Caught formats "POCS{base}({fielders})" or "CS{base}({fielders})".
func Caught(code string, base Base, fielders Fielders) string {
	return code + string(base) + "(" + fielders.String() + ")"
}

// Runner event codes that only move runners.
const (
	Balk                   = "BK"
	DefensiveIndifference  = "DI"
	PassedBall             = "PB"
	WildPitch              = "WP"
	OutAdvancing           = "OA"
	StolenBase             = "SB"
	runnerSeparator        = ";"
	advanceSectionBoundary = "."
)

// Advance is one runner movement. An advance that is thrown out carries the
// fielders who made the play.
type Advance struct {
	From     Base
	To       Base
	Out      bool
	Fielders Fielders
}

// String formats "{from}-{to}" or "{from}X{to}({fielders})".
func (a Advance) String() string {
	if a.Out {
		return string(a.From) + "X" + string(a.To) + "(" + a.Fielders.String() + ")"
	}
	return string(a.From) + "-" + string(a.To)
}

// Advances joins tokens with ";" in the order given.
func Advances(advances []Advance) string {
	parts := make([]string, len(advances))
	for i, a := range advances {
		parts[i] = a.String()
	}
	return strings.Join(parts, runnerSeparator)
}

// RunnerEvent formats "{code}." followed by the advances, e.g. "BK.3-H;1-2".
func RunnerEvent(code string, advances []Advance) string {
	return code + advanceSectionBoundary + Advances(advances)
}

// StolenBases formats the set of stolen bases in base order, e.g. "SB2;SBH".
func StolenBases(targets map[Base]bool) string {
	var parts []string
	for _, b := range []Base{Second, Third, Home} {
		if targets[b] {
			parts = append(parts, StolenBase+string(b))
		}
	}
	return strings.Join(parts, runnerSeparator)
}

// Immediate results need no further selections.
const (
	Walk                = "W"
	HitByPitch          = "HP"
	IntentionalWalk     = "IW"
	CatcherInterference = "C/E2"
	NoPlay              = "NP"
)
