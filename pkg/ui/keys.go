package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	NextTab    key.Binding
	Refresh    key.Binding
	RunOnce    key.Binding
	PrevSymbol key.Binding
	NextSymbol key.Binding
	Search     key.Binding
	Save       key.Binding
	Toggle     key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Escape     key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	RunOnce:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "run strategy once")),
	PrevSymbol: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev symbol")),
	NextSymbol: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next symbol")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Toggle:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select/toggle")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "left pane")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "right pane")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
