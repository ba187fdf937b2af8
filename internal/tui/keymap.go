package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the shell bindings. Everything not bound here is passed to
// the editor session as-is.
type KeyMap struct {
	Mode       key.Binding
	Prev       key.Binding
	Next       key.Binding
	Incomplete key.Binding
	PrevGame   key.Binding
	NextGame   key.Binding
	Undo       key.Binding
	UndoAny    key.Binding
	Clear      key.Binding
	Jump       key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the bindings listed by `retrobuddy keys`.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Mode:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "mode")),
		Prev:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev play")),
		Next:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next play")),
		Incomplete: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next incomplete")),
		PrevGame:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev game")),
		NextGame:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next game")),
		Undo:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "undo")),
		UndoAny:    key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo (any mode)")),
		Clear:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "clear")),
		Jump:       key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "jump")),
		Save:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit now")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Prev, k.Next, k.Incomplete, k.Undo, k.Jump, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.Save, k.Clear},
		{k.Prev, k.Next, k.Incomplete, k.Jump},
		{k.PrevGame, k.NextGame},
		{k.Undo, k.UndoAny, k.Help, k.Quit, k.ForceQuit},
	}
}

// Bindings lists every binding in display order.
func (k KeyMap) Bindings() []key.Binding {
	var out []key.Binding
	for _, col := range k.FullHelp() {
		out = append(out, col...)
	}
	return out
}
