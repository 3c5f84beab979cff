package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/countdemo/internal/config"
)

type keyMap struct {
	Increment key.Binding
	Decrement key.Binding
	Reset     key.Binding
	Remount   key.Binding
	Command   key.Binding
	Quit      key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

func newKeyMap(kc config.KeysConfig) keyMap {
	return keyMap{
		Increment: binding(kc.Increment, "increment"),
		Decrement: binding(kc.Decrement, "decrement"),
		Reset:     binding(kc.Reset, "reset"),
		Remount:   binding(kc.Remount, "remount"),
		Command:   binding(kc.Command, "dispatch"),
		Quit:      binding(kc.Quit, "quit"),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "dispatch")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// binding shows the first key as the help label.
func binding(keys []string, desc string) key.Binding {
	label := ""
	if len(keys) > 0 {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func (k keyMap) counterHelp() []key.Binding {
	return []key.Binding{k.Increment, k.Decrement, k.Reset, k.Command, k.Remount, k.Quit}
}

func (k keyMap) promptHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k keyMap) boundaryHelp() []key.Binding {
	return []key.Binding{k.Remount, k.Quit}
}
