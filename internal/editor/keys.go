package editor

import (
	"fmt"
	"sort"

	"github.com/fakeyudi/retrobuddy/internal/playcode"
)

// KeyEntry binds a key to the code it enters.
type KeyEntry struct {
	Key   string
	Code  string
	Label string
}

// Keys used by the state machine itself.
const (
	KeyTab   = "tab"
	KeyEnter = "enter"
	KeyBack  = "0"
)

// Pitch keys with special handling.
const (
	keyWildPitch   = "v"
	keyPassedBall  = "a"
	keyPickoffTry  = "k"
	keyBallInPlay  = "."
	ballInPlayCode = "X"
	separatorCode  = "."
)

// PitchKeys enter one pitch code each, in display order.
var PitchKeys = []KeyEntry{
	{"b", "B", "Ball"},
	{"s", "S", "Swinging strike"},
	{"c", "C", "Called strike"},
	{"f", "F", "Foul"},
	{"t", "T", "Foul tip"},
	{"m", "M", "Missed bunt"},
	{"p", "P", "Pitchout"},
	{"i", "I", "Intentional ball"},
	{"h", "H", "Hit batter"},
	{"*", "Q", "Swinging on pitchout"},
	{"r", "R", "Foul on pitchout"},
	{"e", "E", "Foul bunt"},
	{"n", "N", "No pitch"},
	{"o", "O", "Foul on bunt"},
	{"u", "U", "Unknown"},
}

// PitchActions are pitch-mode keys that do more than append a code.
var PitchActions = []KeyEntry{
	{keyWildPitch, playcode.WildPitch, "Wild pitch"},
	{keyPassedBall, playcode.PassedBall, "Passed ball"},
	{keyPickoffTry, "1/2/3", "Pickoff throw"},
	{keyBallInPlay, ballInPlayCode, "Ball in play"},
}

// ResultKeys choose a play category that needs further selections.
var ResultKeys = []KeyEntry{
	{"o", playcode.OutGeneric, "Out"},
	{"1", playcode.Single, "Single"},
	{"2", playcode.Double, "Double"},
	{"3", playcode.Triple, "Triple"},
	{"4", playcode.HomeRun, "Home run"},
	{"e", playcode.Error, "Error"},
	{"v", playcode.FieldersChoice, "Fielder's choice"},
	{"f", playcode.SacFly, "Sacrifice fly"},
	{"k", playcode.SacHit, "Sacrifice hit"},
	{"p", playcode.PickedOff, "Pickoff"},
	{"c", playcode.PickoffCaught, "Pickoff caught stealing"},
	{"t", playcode.CaughtStealing, "Caught stealing"},
	{"b", playcode.Balk, "Balk"},
	{"d", playcode.DefensiveIndifference, "Defensive indifference"},
	{"a", playcode.PassedBall, "Passed ball"},
	{"w", playcode.WildPitch, "Wild pitch"},
	{"s", playcode.StolenBase, "Stolen base"},
	{"0", playcode.OutAdvancing, "Out advancing"},
}

// ImmediateKeys set a result that needs no further selections.
var ImmediateKeys = []KeyEntry{
	{"l", playcode.Walk, "Walk"},
	{"h", playcode.HitByPitch, "Hit by pitch"},
	{"i", playcode.IntentionalWalk, "Intentional walk"},
	{"9", playcode.CatcherInterference, "Catcher interference"},
	{";", playcode.NoPlay, "No play"},
}

// ShapeKeys choose how a ball was hit.
var ShapeKeys = []KeyEntry{
	{"g", string(playcode.Grounder), "Grounder"},
	{"l", string(playcode.Liner), "Line drive"},
	{"f", string(playcode.Fly), "Fly ball"},
	{"p", string(playcode.Popup), "Pop up"},
	{"b", string(playcode.Bunt), "Bunt"},
}

// OutTypeKeys choose an out subtype. The first five are the batted-ball shapes.
var OutTypeKeys = append(append([]KeyEntry{}, ShapeKeys...),
	KeyEntry{"s", playcode.SacFly, "Sacrifice fly"},
	KeyEntry{"h", playcode.SacHit, "Sacrifice hit"},
	KeyEntry{"k", playcode.Strikeout, "Strikeout"},
	KeyEntry{"c", playcode.OutFielderCh, "Fielder's choice"},
	KeyEntry{"d", playcode.DoublePlay, "Double play"},
)

// OutCategoryKeys choose an out category that is written after the subtype.
var OutCategoryKeys = []KeyEntry{
	{"w", playcode.GroundDP, "Grounded into DP"},
	{"!", playcode.LinedDP, "Lined into DP"},
	{"y", playcode.TriplePlay, "Triple play"},
	{"z", playcode.ForceOut, "Force out"},
	{"[", playcode.Unassisted, "Unassisted out"},
}

// categoryShape is the subtype implied by an out category until overridden.
var categoryShape = map[string]string{
	playcode.GroundDP:   string(playcode.Grounder),
	playcode.LinedDP:    string(playcode.Liner),
	playcode.TriplePlay: string(playcode.Grounder),
	playcode.ForceOut:   string(playcode.Grounder),
	playcode.Unassisted: string(playcode.Grounder),
}

// GlobalKeys are handled by the shell in every mode.
var GlobalKeys = []string{"tab", "left", "right", "down", "pgup", "pgdown", "ctrl+z", "ctrl+c"}

// ShellKeys are handled by the shell in PITCH and RESULT mode only; in DETAIL
// they belong to the active builder.
var ShellKeys = []string{"x", "-", "j", "q", "?", "enter"}

func index(entries []KeyEntry) map[string]KeyEntry {
	m := make(map[string]KeyEntry, len(entries))
	for _, e := range entries {
		m[e.Key] = e
	}
	return m
}

var (
	pitchByKey       = index(PitchKeys)
	resultByKey      = index(ResultKeys)
	immediateByKey   = index(ImmediateKeys)
	shapeByKey       = index(ShapeKeys)
	outTypeByKey     = index(OutTypeKeys)
	outCategoryByKey = index(OutCategoryKeys)
)

// Conflict is a key bound twice where both bindings could fire.
type Conflict struct {
	Key    string
	First  string
	Second string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%q bound by both %s and %s", c.Key, c.First, c.Second)
}

// ValidateKeyTables reports keys that are bound twice within the same mode.
func ValidateKeyTables() []Conflict {
	type table struct {
		name    string
		entries []KeyEntry
	}
	pitch := []table{{"pitch", PitchKeys}, {"pitch action", PitchActions}}
	result := []table{{"result", ResultKeys}, {"result immediate", ImmediateKeys}}
	out := []table{{"out type", OutTypeKeys}, {"out category", OutCategoryKeys}}

	var conflicts []Conflict
	check := func(shell []string, tables []table) {
		owner := map[string]string{}
		for _, k := range shell {
			owner[k] = "shell"
		}
		for _, t := range tables {
			for _, e := range t.entries {
				if prev, ok := owner[e.Key]; ok {
					conflicts = append(conflicts, Conflict{Key: e.Key, First: prev, Second: t.name})
					continue
				}
				owner[e.Key] = t.name
			}
		}
	}
	modeShell := append(append([]string{}, GlobalKeys...), ShellKeys...)
	check(modeShell, pitch)
	check(modeShell, result)
	check(GlobalKeys, out)
	check(GlobalKeys, []table{{"hit type", ShapeKeys}})

	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Key < conflicts[j].Key })
	return conflicts
}
