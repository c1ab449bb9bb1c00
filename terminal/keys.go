package terminal

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Nav        key.Binding
	PrevCat    key.Binding
	NextCat    key.Binding
	Open       key.Binding
	Form       key.Binding
	Up         key.Binding
	Down       key.Binding
	GetProject key.Binding
	Close      key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	PrevOption key.Binding
	NextOption key.Binding
	Submit     key.Binding
	Another    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Nav:        key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "home/about/projects/contact")),
		PrevCat:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "category")),
		NextCat:    key.NewBinding(key.WithKeys("right", "l")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view projects")),
		Form:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "contact form")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "select")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		GetProject: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "get project")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up")),
		PrevOption: key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "option")),
		NextOption: key.NewBinding(key.WithKeys("right")),
		Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		Another:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "submit another")),
	}
}
