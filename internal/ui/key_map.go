package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	left       key.Binding
	right      key.Binding
	moveLeft   key.Binding
	moveRight  key.Binding
	pending    key.Binding
	inProgress key.Binding
	completed  key.Binding
	create     key.Binding
	edit       key.Binding
	remove     key.Binding
	retry      key.Binding
	submit     key.Binding
	nextField  key.Binding
	back       key.Binding
	yes        key.Binding
	no         key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev lane")),
		right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next lane")),
		moveLeft:   key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "move left")),
		moveRight:  key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "move right")),
		pending:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "pending")),
		inProgress: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "in progress")),
		completed:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		create:     key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new")),
		edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		remove:     key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		retry:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		nextField:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		yes:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:         key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.create, k.edit, k.moveRight, k.remove, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.moveLeft, k.moveRight, k.pending, k.inProgress, k.completed},
		{k.create, k.edit, k.remove, k.retry},
		{k.quit},
	}
}
