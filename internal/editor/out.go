package editor

import (
	"errors"

	"github.com/fakeyudi/retrobuddy/internal/playcode"
)

type outPhase int

const (
	outAwaitType outPhase = iota
	outAwaitFielders
)

// OutBuilder builds fielded outs. The fielder chain is open-ended, so it only
// commits on Enter.
type OutBuilder struct {
	Kind     string // OUT, GDP, LDP, TP, FO or UO
	Subtype  string // batted-ball shape, SF, SH, K, FC or DP
	Fielders playcode.Fielders
	phase    outPhase
}

var outTable = map[outPhase]func(*OutBuilder, string) step{
	outAwaitType:     (*OutBuilder).onType,
	outAwaitFielders: (*OutBuilder).onFielders,
}

var (
	errNeedOutType  = errors.New("choose an out type first")
	errNeedFielders = errors.New("enter at least one fielder")
)

func (b *OutBuilder) Category() string { return playcode.OutGeneric }

func (b *OutBuilder) feed(key string) step { return outTable[b.phase](b, key) }

// selectType handles subtype and category keys; it reports whether key was one.
func (b *OutBuilder) selectType(key string) bool {
	if e, ok := outTypeByKey[key]; ok {
		b.Subtype = e.Code
		return true
	}
	if e, ok := outCategoryByKey[key]; ok {
		b.Kind = e.Code
		if b.Subtype == "" || !playcode.IsShape(b.Subtype) {
			b.Subtype = categoryShape[e.Code]
		}
		return true
	}
	return false
}

func (b *OutBuilder) onType(key string) step {
	if b.selectType(key) {
		b.phase = outAwaitFielders
		return cont()
	}
	if key == KeyEnter {
		return hint(errNeedOutType.Error())
	}
	return cont()
}

func (b *OutBuilder) onFielders(key string) step {
	if f, ok := playcode.Fielder(key); ok {
		b.Fielders = append(b.Fielders, f)
		return cont()
	}
	if key == KeyEnter {
		return commitStep()
	}
	if len(b.Fielders) == 0 {
		b.selectType(key)
	}
	return cont()
}

func (b *OutBuilder) ready() error {
	if b.Subtype == "" {
		return errNeedOutType
	}
	if len(b.Fielders) == 0 && b.Subtype != playcode.Strikeout {
		return errNeedFielders
	}
	return nil
}

func (b *OutBuilder) commit(existing string) commitResult {
	return commitResult{
		result:     playcode.WithPrimary(existing, playcode.Out(b.Kind, b.Subtype, b.Fielders)),
		ballInPlay: b.Subtype != playcode.Strikeout,
		then:       toLocation,
	}
}

func (b *OutBuilder) Prompt() Prompt {
	p := Prompt{Title: "Out"}
	if b.Kind != playcode.OutGeneric {
		p.Picked = append(p.Picked, "category "+b.Kind)
	}
	if b.Subtype != "" {
		p.Picked = append(p.Picked, "type "+b.Subtype)
	}
	if len(b.Fielders) > 0 {
		p.Picked = append(p.Picked, "fielders "+b.Fielders.String())
	}
	switch b.phase {
	case outAwaitType:
		p.Stage = "out type"
		p.Options = append(append([]KeyEntry{}, OutTypeKeys...), OutCategoryKeys...)
	case outAwaitFielders:
		p.Stage = "fielders"
		p.Options = append(fielderKeys(), enterOption)
	}
	return p
}
