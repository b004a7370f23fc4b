package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the explorer key bindings.
type KeyMap struct {
	RatioDown key.Binding
	RatioUp   key.Binding
	PUp       key.Binding
	PDown     key.Binding
	MoreN     key.Binding
	FewerN    key.Binding
	Sweep     key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		RatioDown: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "Ts/Tv -")),
		RatioUp:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "Ts/Tv +")),
		PUp:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "P +")),
		PDown:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "P -")),
		MoreN:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "N max +")),
		FewerN:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "N max -")),
		Sweep:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "run sweeps")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.RatioUp, k.PUp, k.MoreN, k.Sweep, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RatioDown, k.RatioUp, k.PUp, k.PDown},
		{k.MoreN, k.FewerN},
		{k.Sweep, k.Reset, k.Help, k.Quit},
	}
}
