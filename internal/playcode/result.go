package playcode

import (
	"regexp"
	"strings"
)

// Result is a result code split into its editable sections:
//
//	Event    "S6/G78/AP"
//	Advances "2-3;1-2"    (after the first '.')
//	Suffix   "+WP.3-H"    (from the first '+')
//
// The suffix holds runner events recorded from the pitch sequence and always
// stays last.
type Result struct {
	Event    string
	Advances string
	Suffix   string
}

// Split breaks code into a Result.
func Split(code string) Result {
	var r Result
	primary := code
	if i := strings.Index(code, "+"); i >= 0 {
		primary, r.Suffix = code[:i], code[i:]
	}
	r.Event = primary
	if i := strings.Index(primary, advanceSectionBoundary); i >= 0 {
		r.Event, r.Advances = primary[:i], primary[i+1:]
	}
	return r
}

// String joins the sections back into a result code.
func (r Result) String() string {
	s := r.Event
	if r.Advances != "" {
		s += advanceSectionBoundary + r.Advances
	}
	return s + r.Suffix
}

// Primary returns the result without its suffix.
func (r Result) Primary() string {
	return Result{Event: r.Event, Advances: r.Advances}.String()
}

// WithPrimary replaces everything before the suffix of existing with primary.
func WithPrimary(existing, primary string) string {
	return primary + Split(existing).Suffix
}

// AppendSuffix adds a runner event recorded from the pitch sequence, e.g.
// "K" + WP 1-2 -> "K+WP.1-2".
func AppendSuffix(existing, code string, advances []Advance) string {
	return existing + "+" + RunnerEvent(code, advances)
}

// primaryFielder matches the fielder credited in codes like "S6/G" or "E5/L".
var primaryFielder = regexp.MustCompile(`^[A-Z]+(\d+)/`)

// PrimaryFielder returns the first fielder credited in event, or 0.
func PrimaryFielder(event string) int {
	m := primaryFielder.FindStringSubmatch(event)
	if m == nil {
		return 0
	}
	return int(m[1][0] - '0')
}

// awaitingLocation reports whether the event still ends in its bare batted-ball
// shape, i.e. no location or modifier has been added since the commit.
func awaitingLocation(event string) bool {
	i := strings.LastIndex(event, "/")
	if i < 0 {
		return false
	}
	return IsShape(event[i+1:])
}

// AppendLocation adds a hit location to the event section of code. On the
// first location after the commit an infield primary fielder is prefixed.
func AppendLocation(code string, loc Location) string {
	r := Split(code)
	add := loc.Code()
	if awaitingLocation(r.Event) {
		if f := PrimaryFielder(r.Event); f >= 1 && f <= 6 {
			add = string(rune('0'+f)) + add
		}
	}
	r.Event += add
	return r.String()
}

// AppendModifier adds "/{modifier}" to the event section of code.
func AppendModifier(code, modifier string) string {
	r := Split(code)
	if strings.HasSuffix(r.Event, "/") {
		r.Event += modifier
	} else {
		r.Event += "/" + modifier
	}
	return r.String()
}

// AppendAdvances adds runner tokens to the advance section of code, opening
// the section with '.' or extending it with ';'.
func AppendAdvances(code string, advances []Advance) string {
	if len(advances) == 0 {
		return code
	}
	r := Split(code)
	if r.Advances == "" {
		r.Advances = Advances(advances)
	} else {
		r.Advances += runnerSeparator + Advances(advances)
	}
	return r.String()
}

// IsStrikeout reports whether code's event is a strikeout.
func IsStrikeout(code string) bool {
	return strings.HasPrefix(code, Strikeout)
}
