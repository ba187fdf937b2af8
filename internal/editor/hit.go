package editor

import (
	"errors"

	"github.com/fakeyudi/retrobuddy/internal/playcode"
)

type hitPhase int

const (
	hitAwaitShape hitPhase = iota
	hitAwaitFielder
)

// HitBuilder builds batted balls credited to at most one fielder: hits,
// errors, fielder's choices and sacrifices. It commits as soon as the fielder
// is chosen, or on Enter when no fielder is credited.
type HitBuilder struct {
	Code    string
	Shape   playcode.Shape
	Fielder int
	phase   hitPhase
}

var hitTable = map[hitPhase]func(*HitBuilder, string) step{
	hitAwaitShape:   (*HitBuilder).onShape,
	hitAwaitFielder: (*HitBuilder).onFielder,
}

var errNeedShape = errors.New("choose a hit type first (g/l/f/p/b)")

func (b *HitBuilder) Category() string { return b.Code }

func (b *HitBuilder) feed(key string) step { return hitTable[b.phase](b, key) }

func (b *HitBuilder) onShape(key string) step {
	if e, ok := shapeByKey[key]; ok {
		b.Shape = playcode.Shape(e.Code)
		b.phase = hitAwaitFielder
		return cont()
	}
	if key == KeyEnter {
		return hint(errNeedShape.Error())
	}
	return cont()
}

func (b *HitBuilder) onFielder(key string) step {
	if e, ok := shapeByKey[key]; ok {
		b.Shape = playcode.Shape(e.Code)
		return cont()
	}
	if f, ok := playcode.Fielder(key); ok {
		b.Fielder = f
		return commitStep()
	}
	if key == KeyEnter {
		return commitStep()
	}
	return cont()
}

func (b *HitBuilder) ready() error {
	if b.Shape == "" {
		return errNeedShape
	}
	return nil
}

func (b *HitBuilder) commit(existing string) commitResult {
	then := toLocation
	if b.Code == playcode.SacFly || b.Code == playcode.SacHit {
		then = toAdvance
	}
	return commitResult{
		result:     playcode.WithPrimary(existing, playcode.Hit(b.Code, b.Shape, b.Fielder)),
		ballInPlay: true,
		then:       then,
	}
}

func (b *HitBuilder) Prompt() Prompt {
	p := Prompt{Title: categoryLabel(b.Code)}
	if b.Shape != "" {
		p.Picked = append(p.Picked, "type "+string(b.Shape))
	}
	switch b.phase {
	case hitAwaitShape:
		p.Stage = "hit type"
		p.Options = ShapeKeys
	case hitAwaitFielder:
		p.Stage = "fielder"
		p.Options = append(fielderKeys(), enterOption)
	}
	return p
}

// categoryLabel names a result category for prompts.
func categoryLabel(code string) string {
	if e, ok := codeLabels[code]; ok {
		return e
	}
	return code
}

var codeLabels = func() map[string]string {
	m := map[string]string{}
	for _, e := range ResultKeys {
		m[e.Code] = e.Label
	}
	return m
}()
