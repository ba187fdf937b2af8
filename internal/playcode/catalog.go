package playcode

import "strings"

// GroupKind distinguishes coded modifier groups from the two builder groups.
type GroupKind int

const (
	CodedGroup GroupKind = iota
	LocationGroup
	AdvanceGroup
)

// Group is a set of related modifiers selected by one key.
type Group struct {
	Key   string
	Name  string
	Kind  GroupKind
	Codes []string
}

// OptionKey returns the key that selects the i-th code of a group: a, b, c...
func OptionKey(i int) string {
	return string(rune('a' + i))
}

// Option returns the code selected by key within g.
func (g Group) Option(key string) (string, bool) {
	if len(key) != 1 {
		return "", false
	}
	i := int(key[0]) - 'a'
	if i < 0 || i >= len(g.Codes) {
		return "", false
	}
	return g.Codes[i], true
}

// Groups is the modifier catalog in display order. '0' is kept free for "back".
var Groups = []Group{
	{Key: "b", Name: "Ball Types", Codes: []string{"G", "L", "F", "P", "FL", "IF"}},
	{Key: "s", Name: "Sacrifices", Codes: []string{"SF", "SH"}},
	{Key: "u", Name: "Bunt Types", Codes: []string{"BP", "BG", "BL"}},
	{Key: "d", Name: "DP/TP (Generic)", Codes: []string{"DP", "TP"}},
	{Key: "v", Name: "DP/TP Variants", Codes: []string{"GDP", "GTP", "LDP", "LTP", "NDP", "BGDP", "BPDP"}},
	{Key: "i", Name: "Interference/Obstruction", Codes: []string{"BINT", "INT", "RINT", "FINT", "UINT", "OBS"}},
	{Key: "a", Name: "Administrative", Codes: []string{"AP", "BOOT", "C", "IPHR", "PASS", "BR", "MREV", "UREV"}},
	{Key: "c", Name: "Courtesy", Codes: []string{"COUB", "COUF", "COUR"}},
	{Key: "t", Name: "Throws/Relays", Codes: []string{"TH", "TH%", "R$"}},
	{Key: "e", Name: "Errors", Codes: []string{"E$"}},
	{Key: "h", Name: "Hit Location", Kind: LocationGroup},
	{Key: "r", Name: "Advance Runner", Kind: AdvanceGroup},
}

// GroupByKey looks up a modifier group.
func GroupByKey(key string) (Group, bool) {
	for _, g := range Groups {
		if g.Key == key {
			return g, true
		}
	}
	return Group{}, false
}

// Param is the kind of value a parametrized modifier waits for.
type Param int

const (
	NoParam Param = iota
	FielderParam
	BaseParam
)

// ParamOf reports what a modifier code needs before it can be appended.
// "$" takes a fielder and "%" takes a base.
func ParamOf(code string) Param {
	switch {
	case strings.Contains(code, "$"):
		return FielderParam
	case strings.Contains(code, "%"):
		return BaseParam
	}
	return NoParam
}

// Fill substitutes the placeholder in a parametrized code, e.g. ("E$", "6") -> "E6".
func Fill(code, value string) string {
	return strings.NewReplacer("$", value, "%", value).Replace(code)
}

// ModifierDescriptions explains each catalog code.
var ModifierDescriptions = map[string]string{
	"BP":   "Bunt pop up",
	"BG":   "Ground ball bunt",
	"BGDP": "Bunt grounded into double play",
	"BL":   "Line drive bunt",
	"BPDP": "Bunt popped into double play",
	"SH":   "Sacrifice hit (bunt)",
	"G":    "Ground ball",
	"L":    "Line drive",
	"F":    "Fly ball",
	"P":    "Pop fly",
	"FL":   "Foul",
	"IF":   "Infield fly rule",
	"DP":   "Unspecified double play",
	"TP":   "Unspecified triple play",
	"GDP":  "Ground ball double play",
	"GTP":  "Ground ball triple play",
	"LDP":  "Lined into double play",
	"LTP":  "Lined into triple play",
	"NDP":  "No double play credited",
	"SF":   "Sacrifice fly",
	"FO":   "Force out",
	"BINT": "Batter interference",
	"INT":  "Interference",
	"RINT": "Runner interference",
	"UINT": "Umpire interference",
	"OBS":  "Obstruction",
	"FINT": "Fan interference",
	"AP":   "Appeal play",
	"C":    "Called third strike",
	"COUB": "Courtesy batter",
	"COUF": "Courtesy fielder",
	"COUR": "Courtesy runner",
	"MREV": "Manager challenge",
	"UREV": "Umpire review",
	"BOOT": "Batting out of turn",
	"IPHR": "Inside the park home run",
	"PASS": "Runner passed another runner",
	"BR":   "Runner hit by batted ball",
	"TH":   "Throw",
	"TH%":  "Throw to base %",
	"R$":   "Relay throw to $",
	"E$":   "Error on $",
}

// Positions names the nine fielding positions.
var Positions = [10]string{
	1: "Pitcher",
	2: "Catcher",
	3: "First base",
	4: "Second base",
	5: "Third base",
	6: "Shortstop",
	7: "Left field",
	8: "Center field",
	9: "Right field",
}

// ShapeDescriptions names each batted-ball shape.
var ShapeDescriptions = map[Shape]string{
	Grounder: "Grounder",
	Liner:    "Line drive",
	Fly:      "Fly ball",
	Popup:    "Pop up",
	Bunt:     "Bunt",
}
