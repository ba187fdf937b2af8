package playcode

import "strings"

// Depth qualifies how deep a batted ball travelled.
type Depth string

const (
	Shallow   Depth = "S"
	Normal    Depth = ""
	Deep      Depth = "D"
	ExtraDeep Depth = "XD"
)

// Location annotates where a ball was hit, e.g. "78XD" or "5F".
type Location struct {
	Positions string // one or two fielding positions
	Midfield  bool   // M suffix
	Line      bool   // L suffix
	Depth     Depth
	Foul      bool
}

// AllowsMidfield reports whether positions touch second base or shortstop.
func AllowsMidfield(positions string) bool {
	return strings.ContainsAny(positions, "46")
}

// AllowsLine reports whether positions are a corner outfielder on the line.
func AllowsLine(positions string) bool {
	return positions == "7" || positions == "9"
}

var foulPositions = map[string]bool{
	"2": true, "3": true, "5": true, "7": true, "9": true,
	"23": true, "25": true,
}

// AllowsFoul reports whether a ball to positions can land in foul territory.
func AllowsFoul(positions string) bool {
	return foulPositions[positions]
}

// Valid reports whether the location has between one and two positions.
func (l Location) Valid() bool {
	if len(l.Positions) == 0 || len(l.Positions) > 2 {
		return false
	}
	for _, r := range l.Positions {
		if r < '1' || r > '9' {
			return false
		}
	}
	return true
}

// Code renders positions, suffix, depth and foul marker. Suffixes and the
// foul marker that the positions do not allow are left out.
func (l Location) Code() string {
	var sb strings.Builder
	sb.WriteString(l.Positions)
	switch {
	case l.Midfield && AllowsMidfield(l.Positions):
		sb.WriteString("M")
	case l.Line && AllowsLine(l.Positions):
		sb.WriteString("L")
	}
	sb.WriteString(string(l.Depth))
	if l.Foul && AllowsFoul(l.Positions) {
		sb.WriteString("F")
	}
	return sb.String()
}
