package editor

import (
	"github.com/fakeyudi/retrobuddy/internal/playcode"
)

type modifierPhase int

const (
	modifierGroups modifierPhase = iota
	modifierOptions
	modifierParam
	modifierLocation
	modifierAdvance
)

// ModifierBuilder annotates a committed result. Every selection is applied to
// the record as soon as it is made; Enter at the group list returns to PITCH.
type ModifierBuilder struct {
	group    *playcode.Group
	param    string
	location *playcode.Location
	advance  *advanceDraft
}

// advanceDraft collects runner advances appended after the event.
type advanceDraft struct {
	advances []playcode.Advance
	from     playcode.Base
}

var modifierTable = map[modifierPhase]func(*ModifierBuilder, string) step{
	modifierGroups:   (*ModifierBuilder).onGroup,
	modifierOptions:  (*ModifierBuilder).onOption,
	modifierParam:    (*ModifierBuilder).onParam,
	modifierLocation: (*ModifierBuilder).onLocation,
	modifierAdvance:  (*ModifierBuilder).onAdvance,
}

func newModifierBuilder(open after) *ModifierBuilder {
	b := &ModifierBuilder{}
	switch open {
	case toLocation:
		b.location = &playcode.Location{}
	case toAdvance:
		b.advance = &advanceDraft{}
	}
	return b
}

func (b *ModifierBuilder) Category() string { return "MOD" }

// Locating reports whether the hit-location sub-builder is open.
func (b *ModifierBuilder) Locating() bool { return b.location != nil }

// Advancing reports whether the advance-runner sub-builder is open.
func (b *ModifierBuilder) Advancing() bool { return b.advance != nil }

func (b *ModifierBuilder) phase() modifierPhase {
	switch {
	case b.location != nil:
		return modifierLocation
	case b.advance != nil:
		return modifierAdvance
	case b.param != "":
		return modifierParam
	case b.group != nil:
		return modifierOptions
	}
	return modifierGroups
}

func (b *ModifierBuilder) feed(key string) step { return modifierTable[b.phase()](b, key) }

func (b *ModifierBuilder) onGroup(key string) step {
	if key == KeyEnter {
		return finishStep()
	}
	g, ok := playcode.GroupByKey(key)
	if !ok {
		return cont()
	}
	switch g.Kind {
	case playcode.LocationGroup:
		b.location = &playcode.Location{}
	case playcode.AdvanceGroup:
		b.advance = &advanceDraft{}
	default:
		b.group = &g
	}
	return cont()
}

func (b *ModifierBuilder) onOption(key string) step {
	switch key {
	case KeyBack:
		b.group = nil
		return cont()
	case KeyEnter:
		return finishStep()
	}
	code, ok := b.group.Option(key)
	if !ok {
		return cont()
	}
	if playcode.ParamOf(code) != playcode.NoParam {
		b.param = code
		return cont()
	}
	return applyStep(func(result string) string { return playcode.AppendModifier(result, code) })
}

func (b *ModifierBuilder) onParam(key string) step {
	if key == KeyBack {
		b.param = ""
		return cont()
	}
	var value string
	switch playcode.ParamOf(b.param) {
	case playcode.FielderParam:
		if _, ok := playcode.Fielder(key); ok {
			value = key
		}
	case playcode.BaseParam:
		if base, ok := playcode.BaseFromKey(key); ok && base != playcode.Batter {
			value = string(base)
		}
	}
	if value == "" {
		return cont()
	}
	code := playcode.Fill(b.param, value)
	b.param = ""
	return applyStep(func(result string) string { return playcode.AppendModifier(result, code) })
}

func (b *ModifierBuilder) onLocation(key string) step {
	loc := b.location
	if _, ok := playcode.Fielder(key); ok {
		if len(loc.Positions) < 2 {
			loc.Positions += key
		}
		return cont()
	}
	switch key {
	case KeyBack:
		b.location = nil
	case "m":
		if !playcode.AllowsMidfield(loc.Positions) {
			return hint("M needs position 4 or 6")
		}
		loc.Midfield, loc.Line = !loc.Midfield, false
	case "l":
		if !playcode.AllowsLine(loc.Positions) {
			return hint("L needs position 7 or 9 alone")
		}
		loc.Line, loc.Midfield = !loc.Line, false
	case "f":
		if !playcode.AllowsFoul(loc.Positions) {
			return hint("F needs position 2, 3, 5, 7, 9, 23 or 25")
		}
		loc.Foul = !loc.Foul
	case "s":
		loc.Depth = playcode.Shallow
	case "n":
		loc.Depth = playcode.Normal
	case "d":
		loc.Depth = playcode.Deep
	case "x":
		loc.Depth = playcode.ExtraDeep
	case KeyEnter:
		if !loc.Valid() {
			return hint("enter one or two positions")
		}
		done := *loc
		b.location = nil
		return applyStep(func(result string) string { return playcode.AppendLocation(result, done) })
	}
	return cont()
}

func (b *ModifierBuilder) onAdvance(key string) step {
	d := b.advance
	switch key {
	case KeyBack:
		b.advance = nil
		return cont()
	case KeyEnter:
		if d.from != "" {
			return hint(errUnfinished.Error())
		}
		if len(d.advances) == 0 {
			return hint(errNeedAdvance.Error())
		}
		advances := d.advances
		b.advance = nil
		return applyStep(func(result string) string { return playcode.AppendAdvances(result, advances) })
	}
	base, ok := playcode.BaseFromKey(key)
	if !ok || base == playcode.Batter {
		return cont()
	}
	if d.from == "" {
		if base != playcode.Home {
			d.from = base
		}
		return cont()
	}
	if containsBase(basesAhead(d.from, true), base) {
		d.advances = append(d.advances, playcode.Advance{From: d.from, To: base})
		d.from = ""
	}
	return cont()
}

func (b *ModifierBuilder) Prompt() Prompt {
	p := Prompt{Title: "Modifiers"}
	switch b.phase() {
	case modifierGroups:
		p.Stage = "group"
		for _, g := range playcode.Groups {
			p.Options = append(p.Options, KeyEntry{Key: g.Key, Label: g.Name})
		}
		p.Options = append(p.Options, KeyEntry{Key: KeyEnter, Label: "Done"})
	case modifierOptions:
		p.Stage = b.group.Name
		for i, c := range b.group.Codes {
			p.Options = append(p.Options, KeyEntry{Key: playcode.OptionKey(i), Code: c, Label: playcode.ModifierDescriptions[c]})
		}
		p.Options = append(p.Options, KeyEntry{Key: KeyBack, Label: "Back"})
	case modifierParam:
		p.Picked = append(p.Picked, b.param)
		if playcode.ParamOf(b.param) == playcode.BaseParam {
			p.Stage = "base"
			p.Options = baseKeys(playcode.First, playcode.Second, playcode.Third, playcode.Home)
		} else {
			p.Stage = "fielder"
			p.Options = fielderKeys()
		}
		p.Options = append(p.Options, KeyEntry{Key: KeyBack, Label: "Back"})
	case modifierLocation:
		p.Title = "Hit location"
		p.Stage = "positions"
		if b.location.Positions != "" {
			p.Picked = append(p.Picked, b.location.Code())
		}
		p.Options = append(fielderKeys(),
			KeyEntry{Key: "m", Code: "M", Label: "Middle"},
			KeyEntry{Key: "l", Code: "L", Label: "Line"},
			KeyEntry{Key: "f", Code: "F", Label: "Foul"},
			KeyEntry{Key: "s", Code: "S", Label: "Shallow"},
			KeyEntry{Key: "n", Label: "Normal depth"},
			KeyEntry{Key: "d", Code: "D", Label: "Deep"},
			KeyEntry{Key: "x", Code: "XD", Label: "Extra deep"},
			enterOption,
			KeyEntry{Key: KeyBack, Label: "Back"},
		)
	case modifierAdvance:
		p.Title = "Advance runner"
		if len(b.advance.advances) > 0 {
			p.Picked = append(p.Picked, playcode.Advances(b.advance.advances))
		}
		if b.advance.from == "" {
			p.Stage = "runner"
			p.Options = baseKeys(playcode.First, playcode.Second, playcode.Third)
		} else {
			p.Stage = "to"
			p.Picked = append(p.Picked, "runner "+string(b.advance.from))
			p.Options = baseKeys(basesAhead(b.advance.from, true)...)
		}
		p.Options = append(p.Options, enterOption, KeyEntry{Key: KeyBack, Label: "Back"})
	}
	return p
}
