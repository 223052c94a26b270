package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	BigLeft  key.Binding
	BigRight key.Binding
	Status   key.Binding
	Senior   key.Binding
	IRMAA    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "prev input")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next input")),
		Left:     key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/h", "decrease")),
		Right:    key.NewBinding(key.WithKeys("right", "l", "+", "="), key.WithHelp("→/l", "increase")),
		BigLeft:  key.NewBinding(key.WithKeys("pgdown", "H"), key.WithHelp("H", "decrease x10")),
		BigRight: key.NewBinding(key.WithKeys("pgup", "L"), key.WithHelp("L", "increase x10")),
		Status:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filing status")),
		Senior:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "age 65+")),
		IRMAA:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "IRMAA line")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Left, k.Right, k.Status, k.Senior, k.IRMAA, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Left, k.Right, k.BigLeft, k.BigRight},
		{k.Status, k.Senior, k.IRMAA},
		{k.Help, k.Quit},
	}
}
