package editor

import (
	"errors"

	"github.com/fakeyudi/retrobuddy/internal/playcode"
)

var (
	errNeedAdvance = errors.New("add at least one runner advance")
	errUnfinished  = errors.New("finish the current runner first")
)

type advancePhase int

const (
	advanceAwaitFrom advancePhase = iota
	advanceAwaitTo
)

// RunnerAdvanceBuilder builds balks, defensive indifference, passed balls and
// wild pitches as a list of runner advances. When started from the pitch
// sequence it adds a "+WP."/"+PB." suffix instead of replacing the result.
type RunnerAdvanceBuilder struct {
	Code      string
	FromPitch bool
	Advances  []playcode.Advance
	from      playcode.Base
	batterMay bool // result is a strikeout, so the batter may advance
	phase     advancePhase
}

var advanceTable = map[advancePhase]func(*RunnerAdvanceBuilder, string) step{
	advanceAwaitFrom: (*RunnerAdvanceBuilder).onFrom,
	advanceAwaitTo:   (*RunnerAdvanceBuilder).onTo,
}

func (b *RunnerAdvanceBuilder) Category() string { return b.Code }

func (b *RunnerAdvanceBuilder) feed(key string) step { return advanceTable[b.phase](b, key) }

func (b *RunnerAdvanceBuilder) runners() []playcode.Base {
	bases := []playcode.Base{playcode.First, playcode.Second, playcode.Third}
	if b.batterMay {
		bases = append([]playcode.Base{playcode.Batter}, bases...)
	}
	return bases
}

func (b *RunnerAdvanceBuilder) onFrom(key string) step {
	if key == KeyEnter {
		return commitStep()
	}
	if base, ok := playcode.BaseFromKey(key); ok && base != playcode.Home && containsBase(b.runners(), base) {
		b.from = base
		b.phase = advanceAwaitTo
	}
	return cont()
}

func (b *RunnerAdvanceBuilder) onTo(key string) step {
	if key == KeyEnter {
		return hint(errUnfinished.Error())
	}
	if base, ok := playcode.BaseFromKey(key); ok && containsBase(basesAhead(b.from, false), base) {
		b.Advances = append(b.Advances, playcode.Advance{From: b.from, To: base})
		b.from = ""
		b.phase = advanceAwaitFrom
	}
	return cont()
}

func (b *RunnerAdvanceBuilder) ready() error {
	if len(b.Advances) == 0 {
		return errNeedAdvance
	}
	return nil
}

func (b *RunnerAdvanceBuilder) commit(existing string) commitResult {
	if b.FromPitch {
		return commitResult{result: playcode.AppendSuffix(existing, b.Code, b.Advances), then: toPitch}
	}
	return commitResult{result: playcode.RunnerEvent(b.Code, b.Advances), then: toPitch}
}

func (b *RunnerAdvanceBuilder) Prompt() Prompt {
	p := Prompt{Title: categoryLabel(b.Code)}
	if len(b.Advances) > 0 {
		p.Picked = append(p.Picked, "advances "+playcode.Advances(b.Advances))
	}
	switch b.phase {
	case advanceAwaitFrom:
		p.Stage = "runner"
		p.Options = append(baseKeys(b.runners()...), enterOption)
	case advanceAwaitTo:
		p.Picked = append(p.Picked, "runner "+string(b.from))
		p.Stage = "to"
		p.Options = baseKeys(basesAhead(b.from, false)...)
	}
	return p
}

// StolenBaseBuilder toggles the bases stolen on one play.
type StolenBaseBuilder struct {
	Bases map[playcode.Base]bool
}

func (b *StolenBaseBuilder) Category() string { return playcode.StolenBase }

func (b *StolenBaseBuilder) feed(key string) step {
	if key == KeyEnter {
		return commitStep()
	}
	base, ok := playcode.BaseFromKey(key)
	if !ok || base == playcode.First || base == playcode.Batter {
		return cont()
	}
	if b.Bases[base] {
		delete(b.Bases, base)
	} else {
		b.Bases[base] = true
	}
	return cont()
}

func (b *StolenBaseBuilder) ready() error {
	if len(b.Bases) == 0 {
		return errors.New("choose at least one stolen base")
	}
	return nil
}

func (b *StolenBaseBuilder) commit(string) commitResult {
	return commitResult{result: playcode.StolenBases(b.Bases), then: toPitch}
}

func (b *StolenBaseBuilder) Prompt() Prompt {
	p := Prompt{Title: "Stolen base", Stage: "bases"}
	if len(b.Bases) > 0 {
		p.Picked = append(p.Picked, playcode.StolenBases(b.Bases))
	}
	p.Options = append(baseKeys(playcode.Second, playcode.Third, playcode.Home), enterOption)
	return p
}

type oaPhase int

const (
	oaAwaitRunner oaPhase = iota
	oaAwaitAction
	oaAwaitDest
	oaAwaitFielders
)

// OutAdvancingBuilder builds "OA" plays runner by runner: which runner, whether
// they advanced or were thrown out, where to, and who made the out.
type OutAdvancingBuilder struct {
	Advances []playcode.Advance
	pending  playcode.Advance
	phase    oaPhase
}

var oaTable = map[oaPhase]func(*OutAdvancingBuilder, string) step{
	oaAwaitRunner:   (*OutAdvancingBuilder).onRunner,
	oaAwaitAction:   (*OutAdvancingBuilder).onAction,
	oaAwaitDest:     (*OutAdvancingBuilder).onDest,
	oaAwaitFielders: (*OutAdvancingBuilder).onFielders,
}

func (b *OutAdvancingBuilder) Category() string { return playcode.OutAdvancing }

func (b *OutAdvancingBuilder) feed(key string) step { return oaTable[b.phase](b, key) }

func (b *OutAdvancingBuilder) onRunner(key string) step {
	if key == KeyEnter {
		return commitStep()
	}
	switch key {
	case "1", "2", "3":
		b.pending = playcode.Advance{From: playcode.Base(key)}
		b.phase = oaAwaitAction
	}
	return cont()
}

func (b *OutAdvancingBuilder) onAction(key string) step {
	switch key {
	case "-":
		b.pending.Out = false
		b.phase = oaAwaitDest
	case "x":
		b.pending.Out = true
		b.phase = oaAwaitDest
	case KeyEnter:
		return hint(errUnfinished.Error())
	}
	return cont()
}

func (b *OutAdvancingBuilder) onDest(key string) step {
	if key == KeyEnter {
		return hint(errUnfinished.Error())
	}
	base, ok := playcode.BaseFromKey(key)
	if !ok || !containsBase(basesAhead(b.pending.From, false), base) {
		return cont()
	}
	b.pending.To = base
	if b.pending.Out {
		b.phase = oaAwaitFielders
		return cont()
	}
	b.finishRunner()
	return cont()
}

func (b *OutAdvancingBuilder) onFielders(key string) step {
	if f, ok := playcode.Fielder(key); ok {
		b.pending.Fielders = append(b.pending.Fielders, f)
		return cont()
	}
	if key == KeyEnter {
		if len(b.pending.Fielders) == 0 {
			return hint(errNeedFielders.Error())
		}
		b.finishRunner()
	}
	return cont()
}

func (b *OutAdvancingBuilder) finishRunner() {
	b.Advances = append(b.Advances, b.pending)
	b.pending = playcode.Advance{}
	b.phase = oaAwaitRunner
}

func (b *OutAdvancingBuilder) ready() error {
	if b.phase != oaAwaitRunner {
		return errUnfinished
	}
	if len(b.Advances) == 0 {
		return errNeedAdvance
	}
	return nil
}

func (b *OutAdvancingBuilder) commit(string) commitResult {
	return commitResult{result: playcode.RunnerEvent(playcode.OutAdvancing, b.Advances), then: toPitch}
}

func (b *OutAdvancingBuilder) Prompt() Prompt {
	p := Prompt{Title: "Out advancing"}
	if len(b.Advances) > 0 {
		p.Picked = append(p.Picked, "runners "+playcode.Advances(b.Advances))
	}
	switch b.phase {
	case oaAwaitRunner:
		p.Stage = "runner"
		p.Options = append(baseKeys(playcode.First, playcode.Second, playcode.Third), enterOption)
	case oaAwaitAction:
		p.Stage = "advanced or out"
		p.Options = []KeyEntry{{Key: "-", Label: "Advanced"}, {Key: "x", Label: "Thrown out"}}
	case oaAwaitDest:
		p.Stage = "to"
		p.Options = baseKeys(basesAhead(b.pending.From, false)...)
	case oaAwaitFielders:
		p.Stage = "fielders"
		p.Picked = append(p.Picked, "out "+string(b.pending.From)+"X"+string(b.pending.To))
		p.Options = append(fielderKeys(), enterOption)
	}
	return p
}
