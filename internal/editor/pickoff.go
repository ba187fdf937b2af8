package editor

import (
	"errors"
	"strconv"

	"github.com/fakeyudi/retrobuddy/internal/playcode"
)

type pickoffPhase int

const (
	pickoffAwaitBase pickoffPhase = iota
	pickoffAwaitFielders
	pickoffAwaitError
)

// PickoffBuilder builds pickoffs (PO), pickoffs caught stealing (POCS) and
// caught stealing (CS). A pickoff names either the fielders who made it or the
// fielder charged with an error; the caught-stealing forms always need fielders.
type PickoffBuilder struct {
	Code         string
	Base         playcode.Base
	Fielders     playcode.Fielders
	ErrorFielder int
	phase        pickoffPhase
}

var pickoffTable = map[pickoffPhase]func(*PickoffBuilder, string) step{
	pickoffAwaitBase:     (*PickoffBuilder).onBase,
	pickoffAwaitFielders: (*PickoffBuilder).onFielders,
	pickoffAwaitError:    (*PickoffBuilder).onError,
}

var errNeedBase = errors.New("choose a base first")

func (b *PickoffBuilder) Category() string { return b.Code }

func (b *PickoffBuilder) feed(key string) step { return pickoffTable[b.phase](b, key) }

func (b *PickoffBuilder) bases() []playcode.Base {
	if b.Code == playcode.PickedOff {
		return []playcode.Base{playcode.First, playcode.Second, playcode.Third}
	}
	return []playcode.Base{playcode.Second, playcode.Third, playcode.Home}
}

func (b *PickoffBuilder) onBase(key string) step {
	if base, ok := playcode.BaseFromKey(key); ok && containsBase(b.bases(), base) {
		b.Base = base
		b.phase = pickoffAwaitFielders
		return cont()
	}
	if key == KeyEnter {
		return hint(errNeedBase.Error())
	}
	return cont()
}

func (b *PickoffBuilder) onFielders(key string) step {
	if f, ok := playcode.Fielder(key); ok {
		b.Fielders = append(b.Fielders, f)
		return cont()
	}
	switch key {
	case "e":
		if b.Code == playcode.PickedOff && len(b.Fielders) == 0 {
			b.phase = pickoffAwaitError
		}
	case KeyEnter:
		return commitStep()
	}
	return cont()
}

func (b *PickoffBuilder) onError(key string) step {
	if f, ok := playcode.Fielder(key); ok {
		b.ErrorFielder = f
		return cont()
	}
	if key == KeyEnter {
		return commitStep()
	}
	return cont()
}

func (b *PickoffBuilder) ready() error {
	if b.Base == "" {
		return errNeedBase
	}
	if b.phase == pickoffAwaitError {
		if b.ErrorFielder == 0 {
			return errors.New("choose the fielder charged with the error")
		}
		return nil
	}
	if len(b.Fielders) == 0 {
		return errNeedFielders
	}
	return nil
}

func (b *PickoffBuilder) commit(string) commitResult {
	var code string
	switch {
	case b.ErrorFielder > 0:
		code = playcode.PickoffError(b.Base, b.ErrorFielder)
	case b.Code == playcode.PickedOff:
		code = playcode.Pickoff(b.Base, b.Fielders)
	default:
		code = playcode.Caught(b.Code, b.Base, b.Fielders)
	}
	return commitResult{result: code, then: toPitch}
}

func (b *PickoffBuilder) Prompt() Prompt {
	p := Prompt{Title: categoryLabel(b.Code)}
	if b.Base != "" {
		p.Picked = append(p.Picked, "base "+string(b.Base))
	}
	if len(b.Fielders) > 0 {
		p.Picked = append(p.Picked, "fielders "+b.Fielders.String())
	}
	if b.ErrorFielder > 0 {
		p.Picked = append(p.Picked, "error E"+strconv.Itoa(b.ErrorFielder))
	}
	switch b.phase {
	case pickoffAwaitBase:
		p.Stage = "base"
		p.Options = baseKeys(b.bases()...)
	case pickoffAwaitFielders:
		p.Stage = "fielders"
		p.Options = fielderKeys()
		if b.Code == playcode.PickedOff && len(b.Fielders) == 0 {
			p.Options = append(p.Options, KeyEntry{Key: "e", Label: "Error"})
		}
		p.Options = append(p.Options, enterOption)
	case pickoffAwaitError:
		p.Stage = "error fielder"
		p.Options = append(fielderKeys(), enterOption)
	}
	return p
}
