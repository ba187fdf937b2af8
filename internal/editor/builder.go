package editor

import "github.com/fakeyudi/retrobuddy/internal/playcode"

// Builder collects the selections for one play category while in DETAIL
// mode. The set of builders is closed: HitBuilder, OutBuilder,
// PickoffBuilder, RunnerAdvanceBuilder, OutAdvancingBuilder,
// StolenBaseBuilder and ModifierBuilder.
type Builder interface {
	// Category is the result key's code, e.g. "S", "OUT" or "PO".
	Category() string
	// Prompt describes the selections so far and what can be pressed next.
	Prompt() Prompt
	feed(key string) step
}

// committer is implemented by builders that produce a result code.
type committer interface {
	ready() error
	commit(existing string) commitResult
}

type action int

const (
	stepContinue action = iota
	stepCommit
	stepApply
	stepFinish
)

// step is what a builder asks the session to do after a key.
type step struct {
	action action
	edit   func(result string) string
	hint   string
}

func cont() step { return step{} }
func hint(msg string) step { return step{hint: msg} }
func commitStep() step { return step{action: stepCommit} }
func finishStep() step { return step{action: stepFinish} }
func applyStep(edit func(string) string) step {
	return step{action: stepApply, edit: edit}
}

// after names where the session goes once a commit lands.
type after int

const (
	toPitch after = iota
	toLocation
	toAdvance
)

type commitResult struct {
	result     string
	ballInPlay bool
	then       after
}

// Prompt is a builder's state for rendering.
type Prompt struct {
	Title   string
	Stage   string
	Picked  []string
	Options []KeyEntry
}

// newBuilder starts the builder for a result category.
func newBuilder(category string, current string) Builder {
	switch category {
	case playcode.Single, playcode.Double, playcode.Triple, playcode.HomeRun,
		playcode.Error, playcode.FieldersChoice, playcode.SacFly, playcode.SacHit:
		return &HitBuilder{Code: category}
	case playcode.OutGeneric:
		return &OutBuilder{Kind: playcode.OutGeneric}
	case playcode.PickedOff, playcode.PickoffCaught, playcode.CaughtStealing:
		return &PickoffBuilder{Code: category}
	case playcode.Balk, playcode.DefensiveIndifference:
		return &RunnerAdvanceBuilder{Code: category}
	case playcode.PassedBall, playcode.WildPitch:
		k := playcode.IsStrikeout(current)
		return &RunnerAdvanceBuilder{Code: category, FromPitch: k, batterMay: k}
	case playcode.StolenBase:
		return &StolenBaseBuilder{Bases: map[playcode.Base]bool{}}
	case playcode.OutAdvancing:
		return &OutAdvancingBuilder{}
	}
	return nil
}

func fielderKeys() []KeyEntry {
	keys := make([]KeyEntry, 0, 9)
	for p := 1; p <= 9; p++ {
		keys = append(keys, KeyEntry{Key: string(rune('0' + p)), Code: string(rune('0' + p)), Label: playcode.Positions[p]})
	}
	return keys
}

var enterOption = KeyEntry{Key: KeyEnter, Label: "Finish"}

func baseKeys(bases ...playcode.Base) []KeyEntry {
	keys := make([]KeyEntry, 0, len(bases))
	for _, b := range bases {
		k := string(b)
		switch b {
		case playcode.Home:
			k = "4"
		case playcode.Batter:
			k = "b"
		}
		keys = append(keys, KeyEntry{Key: k, Code: string(b), Label: baseLabel(b)})
	}
	return keys
}

func baseLabel(b playcode.Base) string {
	switch b {
	case playcode.Batter:
		return "Batter"
	case playcode.First:
		return "First"
	case playcode.Second:
		return "Second"
	case playcode.Third:
		return "Third"
	}
	return "Home"
}

// basesAhead returns the bases a runner on from can reach.
func basesAhead(from playcode.Base, includeStay bool) []playcode.Base {
	order := []playcode.Base{playcode.Batter, playcode.First, playcode.Second, playcode.Third, playcode.Home}
	var out []playcode.Base
	seen := false
	for _, b := range order {
		if b == from {
			seen = true
			if includeStay && b != playcode.Batter {
				out = append(out, b)
			}
			continue
		}
		if seen {
			out = append(out, b)
		}
	}
	return out
}

func containsBase(bases []playcode.Base, b playcode.Base) bool {
	for _, x := range bases {
		if x == b {
			return true
		}
	}
	return false
}
